package service

import (
	"context"
	"time"

	"cramplan/internal/contract"
	"cramplan/internal/domain"
	"cramplan/internal/planner"
)

// SubjectIntake is the user-declared shape of one subject to study.
type SubjectIntake struct {
	Name          string
	TotalChapters int
	Difficulty    domain.Difficulty
	ExamDate      time.Time
}

// IntakeResult reports what subject intake created.
type IntakeResult struct {
	Subjects []*domain.Subject
	Chapters int
}

// IntakeService decomposes declared subjects into chapters and persists
// both, using the planner's breakdown (or its fallback) for chapter detail.
type IntakeService interface {
	CreateSubjects(ctx context.Context, inputs []SubjectIntake, now time.Time) (*IntakeResult, error)
}

// CreatePlanRequest carries the study-plan parameters for schedule creation.
type CreatePlanRequest struct {
	Name           string
	Description    string
	StartDate      time.Time
	EndDate        time.Time
	DailyHours     float64
	PreferredTimes []string
}

// PlanService creates study plans, materializes schedules into sessions, and
// resets the full planning state.
type PlanService interface {
	// CreatePlan persists a new active plan (deactivating any prior one),
	// asks the planner for a schedule over all chapters, and materializes
	// it into sessions.
	CreatePlan(ctx context.Context, req CreatePlanRequest, now time.Time) (*domain.StudyPlan, *contract.MaterializeResult, error)

	// Materialize converts a schedule structure into persisted sessions
	// as one atomic batch. Descriptors naming unknown chapters are dropped.
	Materialize(ctx context.Context, schedule planner.ScheduleResult, planID string, now time.Time) (*contract.MaterializeResult, error)

	// ResetAll wipes all subjects, chapters, sessions, plans, and
	// adaptation records in one transaction.
	ResetAll(ctx context.Context) error
}

// ScheduleService answers read queries over the stored schedule.
type ScheduleService interface {
	// CurrentSchedule returns pending sessions within daysAhead days of
	// now, ordered by scheduled time.
	CurrentSchedule(ctx context.Context, now time.Time, daysAhead int) ([]contract.SessionView, error)
	Progress(ctx context.Context, now time.Time) (*contract.ProgressReport, error)
	SubjectProgress(ctx context.Context) ([]contract.SubjectProgress, error)
	DailyCompletions(ctx context.Context, now time.Time, days int) ([]contract.DailyCount, error)
	MissedSessions(ctx context.Context) ([]contract.SessionView, error)
	AdaptationsHistory(ctx context.Context, limit int) ([]contract.AdaptationView, error)
}

// AdaptationService owns session status transitions and schedule adaptation.
type AdaptationService interface {
	// MarkCompleted completes a session, and completes its chapter when no
	// scheduled sessions remain for it.
	MarkCompleted(ctx context.Context, sessionID, notes string, now time.Time) error

	// MarkMissed transitions a session to missed, recording the reason.
	MarkMissed(ctx context.Context, sessionID, reason string, now time.Time) error

	// ApplyAdaptation applies a structural adaptation plan for a missed
	// session: one audit record, an optional new rescheduled session, and
	// in-place moves of other still-scheduled sessions. Atomic.
	ApplyAdaptation(ctx context.Context, plan planner.AdaptationResult, originalSessionID, reason string, now time.Time) error

	// HandleMissedSession marks the session missed, requests an adaptation
	// plan from the planner, and applies it. Returns whether an adaptation
	// was applied.
	HandleMissedSession(ctx context.Context, sessionID, reason string, now time.Time) (bool, error)
}

// ContentService attaches fetched reference text and a generated study
// summary to a chapter.
type ContentService interface {
	// FetchChapterContent looks up reference content for the chapter's
	// title and, when found, stores it together with a generated summary.
	// Returns whether content was found.
	FetchChapterContent(ctx context.Context, chapterID string) (bool, error)
}
