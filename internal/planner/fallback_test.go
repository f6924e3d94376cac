package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackBreakdown_OrdinalChapters(t *testing.T) {
	result := FallbackBreakdown([]SubjectInput{
		{Name: "Physics", TotalChapters: 3, Difficulty: "hard", ExamDate: "2026-09-20"},
	})

	require.Len(t, result.Breakdown, 1)
	sb := result.Breakdown[0]
	assert.Equal(t, "Physics", sb.SubjectName)
	require.Len(t, sb.Chapters, 3)

	assert.Equal(t, "Chapter 1", sb.Chapters[0].Title)
	assert.Equal(t, "Chapter 3", sb.Chapters[2].Title)
	for _, ch := range sb.Chapters {
		assert.Equal(t, 2.0, ch.EstimatedHours)
		assert.Equal(t, "hard", ch.Difficulty)
		assert.Empty(t, ch.Prerequisites)
	}
	assert.NotEmpty(t, result.StudyTips)
}

func TestFallbackBreakdown_MultipleSubjects(t *testing.T) {
	result := FallbackBreakdown([]SubjectInput{
		{Name: "Math", TotalChapters: 2, Difficulty: "medium"},
		{Name: "History", TotalChapters: 1, Difficulty: "easy"},
	})

	require.Len(t, result.Breakdown, 2)
	assert.Len(t, result.Breakdown[0].Chapters, 2)
	assert.Len(t, result.Breakdown[1].Chapters, 1)
}

func TestFallbackSchedule_PacksWithinDailyBudget(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	chapters := []ChapterInput{
		{Title: "A", SubjectName: "Math", EstimatedHours: 2.0},
		{Title: "B", SubjectName: "Math", EstimatedHours: 3.0},
		{Title: "C", SubjectName: "Math", EstimatedHours: 1.0},
	}

	result := FallbackSchedule(chapters, PlanConfig{
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 13),
		DailyHours: 4.0,
	})

	// Day 1 takes A (2h) then skips B (3h > 2h remaining) and takes C (1h).
	// Day 2 takes B.
	require.Len(t, result.Schedule, 2)

	day1 := result.Schedule[0]
	assert.Equal(t, "2026-09-01", day1.Date)
	require.Len(t, day1.Sessions, 2)
	assert.Equal(t, "A", day1.Sessions[0].ChapterTitle)
	assert.Equal(t, "C", day1.Sessions[1].ChapterTitle)

	day2 := result.Schedule[1]
	assert.Equal(t, "2026-09-02", day2.Date)
	require.Len(t, day2.Sessions, 1)
	assert.Equal(t, "B", day2.Sessions[0].ChapterTitle)
}

func TestFallbackSchedule_CoversAllChaptersWhenTimeAllows(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	var chapters []ChapterInput
	for _, title := range []string{"C1", "C2", "C3", "C4", "C5"} {
		chapters = append(chapters, ChapterInput{Title: title, SubjectName: "Bio", EstimatedHours: 2.0})
	}

	result := FallbackSchedule(chapters, PlanConfig{
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 30),
		DailyHours: 4.0,
	})

	scheduled := map[string]bool{}
	for _, day := range result.Schedule {
		for _, s := range day.Sessions {
			scheduled[s.ChapterTitle] = true
			assert.Equal(t, "09:00", s.StartTime)
		}
	}
	assert.Len(t, scheduled, 5, "every chapter should land on some day")
}

func TestFallbackSchedule_StopsAtEndDate(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	chapters := []ChapterInput{
		{Title: "A", EstimatedHours: 2.0},
		{Title: "B", EstimatedHours: 2.0},
		{Title: "C", EstimatedHours: 2.0},
	}

	// One day window and a 2h budget: only A fits.
	result := FallbackSchedule(chapters, PlanConfig{
		StartDate:  start,
		EndDate:    start,
		DailyHours: 2.0,
	})

	require.Len(t, result.Schedule, 1)
	require.Len(t, result.Schedule[0].Sessions, 1)
	assert.Equal(t, "A", result.Schedule[0].Sessions[0].ChapterTitle)
}

func TestFallbackSchedule_OversizedChapterNeverFits(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	chapters := []ChapterInput{
		{Title: "Huge", EstimatedHours: 10.0},
	}

	result := FallbackSchedule(chapters, PlanConfig{
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 5),
		DailyHours: 4.0,
	})

	assert.Empty(t, result.Schedule, "a chapter above the daily budget is never placed")
}

func TestFallbackAdaptation_NextDaySameTime(t *testing.T) {
	now := time.Date(2026, 9, 10, 18, 30, 0, 0, time.UTC)
	result := FallbackAdaptation(MissedSessionInfo{
		ChapterTitle: "Thermodynamics",
		StartTime:    "11:00",
	}, now)

	require.NotNil(t, result.AdaptationPlan.RescheduleMissed)
	rm := result.AdaptationPlan.RescheduleMissed
	assert.Equal(t, "2026-09-11", rm.NewDate)
	assert.Equal(t, "11:00", rm.NewTime)
	assert.Equal(t, 0.0, rm.DurationAdjustment)
	assert.Empty(t, result.AdaptationPlan.ScheduleAdjustments)
}

func TestFallbackAdaptation_UnparseableTimeDefaults(t *testing.T) {
	now := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	result := FallbackAdaptation(MissedSessionInfo{StartTime: "whenever"}, now)

	require.NotNil(t, result.AdaptationPlan.RescheduleMissed)
	assert.Equal(t, "14:00", result.AdaptationPlan.RescheduleMissed.NewTime)
}

func TestFallbackSummary_MentionsTopic(t *testing.T) {
	s := FallbackSummary("Photosynthesis")
	assert.Contains(t, s, "Photosynthesis")
}
