package planner

import (
	"fmt"
	"time"
)

// Date and time-of-day layouts used throughout the oracle contracts.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// SubjectInput describes one subject sent to the breakdown task.
type SubjectInput struct {
	Name          string
	TotalChapters int
	Difficulty    string
	ExamDate      string // DateLayout
}

// ChapterInput describes one chapter sent to the schedule task.
type ChapterInput struct {
	Title          string
	SubjectName    string
	EstimatedHours float64
	Difficulty     string
}

// PlanConfig carries the study-plan constraints for the schedule task.
type PlanConfig struct {
	StartDate        time.Time
	EndDate          time.Time
	DailyHours       float64
	PreferredTimes   []string
	BreakPreferences string
}

// MissedSessionInfo describes the missed session for the adaptation task.
type MissedSessionInfo struct {
	ChapterTitle  string
	SubjectName   string
	ScheduledDate string // DateLayout
	StartTime     string // TimeLayout
	DurationHours float64
	MissReason    string
}

// UpcomingInfo is a compact view of an upcoming session for the adaptation
// prompt; at most ten are sent.
type UpcomingInfo struct {
	ChapterTitle  string
	ScheduledDate string
	DurationHours float64
}

// ProgressInfo is the progress snapshot included in the adaptation prompt.
type ProgressInfo struct {
	TotalSessions     int
	CompletedSessions int
	DaysRemaining     int
	AvgDailyProgress  float64
}

// ChapterPlan is one chapter in a breakdown response.
type ChapterPlan struct {
	Title          string   `json:"title"`
	EstimatedHours float64  `json:"estimated_hours"`
	Difficulty     string   `json:"difficulty"`
	KeyTopics      []string `json:"key_topics"`
	Prerequisites  []string `json:"prerequisites"`
}

// SubjectBreakdown is the chapter decomposition of one subject.
type SubjectBreakdown struct {
	SubjectName string        `json:"subject_name"`
	Chapters    []ChapterPlan `json:"chapters"`
}

// BreakdownResult is the breakdown task response.
type BreakdownResult struct {
	Breakdown []SubjectBreakdown `json:"breakdown"`
	StudyTips []string           `json:"study_tips"`
	Reasoning string             `json:"reasoning"`
}

// SessionSlot is one planned session within a scheduled day.
type SessionSlot struct {
	ChapterTitle  string  `json:"chapter_title"`
	Subject       string  `json:"subject"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
	SessionType   string  `json:"session_type"`
	BreakAfter    int     `json:"break_after"`
}

// DaySchedule groups the sessions planned for a single calendar day.
type DaySchedule struct {
	Date     string        `json:"date"`
	Sessions []SessionSlot `json:"sessions"`
}

// ScheduleResult is the schedule task response.
type ScheduleResult struct {
	Schedule              []DaySchedule `json:"schedule"`
	SchedulingPrinciples  []string      `json:"scheduling_principles"`
	AdaptationSuggestions []string      `json:"adaptation_suggestions"`
}

// RescheduleMissed is the new slot proposed for a missed session.
type RescheduleMissed struct {
	NewDate            string  `json:"new_date"`
	NewTime            string  `json:"new_time"`
	DurationAdjustment float64 `json:"duration_adjustment"`
	Reasoning          string  `json:"reasoning"`
}

// ScheduleAdjustment is one proposed change to another session.
type ScheduleAdjustment struct {
	OriginalSession string `json:"original_session"`
	ChangeType      string `json:"change_type"`
	NewDate         string `json:"new_date"`
	NewTime         string `json:"new_time"`
	Reasoning       string `json:"reasoning"`
}

// AdaptationPlan is the structural part of an adaptation response.
type AdaptationPlan struct {
	RescheduleMissed    *RescheduleMissed    `json:"reschedule_missed"`
	ScheduleAdjustments []ScheduleAdjustment `json:"schedule_adjustments"`
}

// ImpactAnalysis is the oracle's assessment of a missed session's impact.
type ImpactAnalysis struct {
	UrgencyLevel      string   `json:"urgency_level"`
	CatchUpDifficulty string   `json:"catch_up_difficulty"`
	Recommendations   []string `json:"recommendations"`
}

// AdaptationResult is the adaptation task response.
type AdaptationResult struct {
	AdaptationPlan AdaptationPlan `json:"adaptation_plan"`
	ImpactAnalysis ImpactAnalysis `json:"impact_analysis"`
	Reasoning      string         `json:"reasoning"`
}

// validateBreakdown rejects responses with no usable chapter decomposition.
func validateBreakdown(r BreakdownResult) error {
	if len(r.Breakdown) == 0 {
		return fmt.Errorf("breakdown is empty")
	}
	for _, sb := range r.Breakdown {
		if sb.SubjectName == "" {
			return fmt.Errorf("breakdown entry missing subject_name")
		}
		if len(sb.Chapters) == 0 {
			return fmt.Errorf("subject %q has no chapters", sb.SubjectName)
		}
		for _, ch := range sb.Chapters {
			if ch.Title == "" {
				return fmt.Errorf("subject %q has a chapter without a title", sb.SubjectName)
			}
		}
	}
	return nil
}

// validateSchedule rejects responses whose days or sessions cannot be
// materialized.
func validateSchedule(r ScheduleResult) error {
	if len(r.Schedule) == 0 {
		return fmt.Errorf("schedule is empty")
	}
	for _, day := range r.Schedule {
		if _, err := time.Parse(DateLayout, day.Date); err != nil {
			return fmt.Errorf("invalid schedule date %q", day.Date)
		}
		for _, s := range day.Sessions {
			if s.ChapterTitle == "" {
				return fmt.Errorf("session on %s missing chapter_title", day.Date)
			}
			if _, err := time.Parse(TimeLayout, s.StartTime); err != nil {
				return fmt.Errorf("invalid start_time %q on %s", s.StartTime, day.Date)
			}
		}
	}
	return nil
}

// validateAdaptation rejects responses whose structural changes cannot be
// applied.
func validateAdaptation(r AdaptationResult) error {
	if rm := r.AdaptationPlan.RescheduleMissed; rm != nil {
		if _, err := time.Parse(DateLayout, rm.NewDate); err != nil {
			return fmt.Errorf("invalid reschedule date %q", rm.NewDate)
		}
		if _, err := time.Parse(TimeLayout, rm.NewTime); err != nil {
			return fmt.Errorf("invalid reschedule time %q", rm.NewTime)
		}
	}
	for _, adj := range r.AdaptationPlan.ScheduleAdjustments {
		if adj.ChangeType != "reschedule" {
			continue
		}
		if adj.OriginalSession == "" {
			return fmt.Errorf("adjustment missing original_session")
		}
		if _, err := time.Parse(DateLayout, adj.NewDate); err != nil {
			return fmt.Errorf("invalid adjustment date %q", adj.NewDate)
		}
		if _, err := time.Parse(TimeLayout, adj.NewTime); err != nil {
			return fmt.Errorf("invalid adjustment time %q", adj.NewTime)
		}
	}
	return nil
}
