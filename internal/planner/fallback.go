package planner

import (
	"fmt"
	"time"
)

// defaultChapterHours is the estimate assigned to fallback-generated chapters.
const defaultChapterHours = 2.0

// Placeholder slot assigned to every fallback-scheduled session. The oracle
// path is expected to produce realistic per-session times; the fallback is
// intentionally coarse.
const (
	fallbackStartTime = "09:00"
	fallbackEndTime   = "11:00"
)

// FallbackBreakdown synthesizes a minimal chapter decomposition without the
// oracle: one ordinally named chapter per declared chapter, with a fixed
// default duration and the subject's difficulty.
func FallbackBreakdown(subjects []SubjectInput) BreakdownResult {
	breakdown := make([]SubjectBreakdown, 0, len(subjects))
	for _, subj := range subjects {
		chapters := make([]ChapterPlan, 0, subj.TotalChapters)
		for i := 0; i < subj.TotalChapters; i++ {
			chapters = append(chapters, ChapterPlan{
				Title:          fmt.Sprintf("Chapter %d", i+1),
				EstimatedHours: defaultChapterHours,
				Difficulty:     subj.Difficulty,
				KeyTopics:      []string{fmt.Sprintf("Topic %d", i+1)},
				Prerequisites:  []string{},
			})
		}
		breakdown = append(breakdown, SubjectBreakdown{
			SubjectName: subj.Name,
			Chapters:    chapters,
		})
	}

	return BreakdownResult{
		Breakdown: breakdown,
		StudyTips: []string{"Review regularly", "Take breaks", "Practice with examples"},
		Reasoning: "Fallback breakdown due to planning service unavailability",
	}
}

// FallbackSchedule bin-packs chapters onto calendar days without the oracle.
// Starting at the plan's start date, each day greedily takes chapters (in
// input order) while the day's assigned hours plus the next chapter's
// estimate stays within the daily budget; the day then advances. Packing
// stops when the queue is empty or the end date is passed.
func FallbackSchedule(chapters []ChapterInput, cfg PlanConfig) ScheduleResult {
	var schedule []DaySchedule

	queue := make([]ChapterInput, len(chapters))
	copy(queue, chapters)

	for current := cfg.StartDate; len(queue) > 0 && !current.After(cfg.EndDate); current = current.AddDate(0, 0, 1) {
		var daySessions []SessionSlot
		remaining := cfg.DailyHours

		kept := queue[:0]
		for _, ch := range queue {
			if remaining >= ch.EstimatedHours {
				daySessions = append(daySessions, SessionSlot{
					ChapterTitle:  ch.Title,
					Subject:       ch.SubjectName,
					StartTime:     fallbackStartTime,
					EndTime:       fallbackEndTime,
					DurationHours: ch.EstimatedHours,
					SessionType:   "new_material",
					BreakAfter:    15,
				})
				remaining -= ch.EstimatedHours
			} else {
				kept = append(kept, ch)
			}
		}
		queue = kept

		if len(daySessions) > 0 {
			schedule = append(schedule, DaySchedule{
				Date:     current.Format(DateLayout),
				Sessions: daySessions,
			})
		}
	}

	return ScheduleResult{
		Schedule:              schedule,
		SchedulingPrinciples:  []string{"Basic time allocation", "Sequential chapter progression"},
		AdaptationSuggestions: []string{"Monitor progress", "Adjust as needed"},
	}
}

// FallbackAdaptation reschedules a missed session to the same time of day on
// the next calendar day after now, leaving duration and all other sessions
// untouched.
func FallbackAdaptation(missed MissedSessionInfo, now time.Time) AdaptationResult {
	newTime := missed.StartTime
	if _, err := time.Parse(TimeLayout, newTime); err != nil {
		newTime = "14:00"
	}

	return AdaptationResult{
		AdaptationPlan: AdaptationPlan{
			RescheduleMissed: &RescheduleMissed{
				NewDate:            now.AddDate(0, 0, 1).Format(DateLayout),
				NewTime:            newTime,
				DurationAdjustment: 0,
				Reasoning:          "Rescheduled to next available day",
			},
			ScheduleAdjustments: []ScheduleAdjustment{},
		},
		ImpactAnalysis: ImpactAnalysis{
			UrgencyLevel:      "medium",
			CatchUpDifficulty: "manageable",
			Recommendations:   []string{"Review missed material", "Stay consistent"},
		},
		Reasoning: "Basic rescheduling due to planning service unavailability",
	}
}

// FallbackSummary is the placeholder text attached when summary generation
// is unavailable.
func FallbackSummary(topic string) string {
	return fmt.Sprintf("Summary for %s:\n\n[Summary generation temporarily unavailable. Please review your study materials and create notes manually.]", topic)
}
