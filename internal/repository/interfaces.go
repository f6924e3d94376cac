package repository

import (
	"context"
	"errors"
	"time"

	"cramplan/internal/domain"
)

// ErrNotFound is returned when a lookup by id matches no row. Callers treat
// it as "the operation does not apply", not as a fatal failure.
var ErrNotFound = errors.New("not found")

// SessionCounts aggregates session totals by status for progress reporting.
type SessionCounts struct {
	Total     int
	Completed int
	Missed    int
}

// UpcomingSession is a joined read projection of a session with its chapter
// and subject context, used by the schedule views.
type UpcomingSession struct {
	Session      domain.StudySession
	ChapterTitle string
	SubjectName  string
	Difficulty   domain.Difficulty
}

// AdaptationRecord is a joined read projection of an audit record resolved
// to the affected chapter and subject.
type AdaptationRecord struct {
	Adaptation   domain.ScheduleAdaptation
	ChapterTitle string
	SubjectName  string
}

// DailyCompletion counts sessions completed on a single calendar day.
type DailyCompletion struct {
	Day       time.Time
	Completed int
}

type SubjectRepo interface {
	Create(ctx context.Context, s *domain.Subject) error
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	List(ctx context.Context) ([]*domain.Subject, error)
	// EarliestExamDate returns the soonest exam date over all subjects,
	// or nil when no subjects exist.
	EarliestExamDate(ctx context.Context) (*time.Time, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type ChapterRepo interface {
	Create(ctx context.Context, c *domain.Chapter) error
	GetByID(ctx context.Context, id string) (*domain.Chapter, error)
	ListBySubject(ctx context.Context, subjectID string) ([]*domain.Chapter, error)
	ListAll(ctx context.Context) ([]*domain.Chapter, error)
	// FindByTitle resolves a chapter by title. When subjectName is non-empty
	// the match is restricted to that subject's chapters; the oldest match
	// wins when duplicates remain.
	FindByTitle(ctx context.Context, subjectName, title string) (*domain.Chapter, error)
	Update(ctx context.Context, c *domain.Chapter) error
	Counts(ctx context.Context) (total, completed int, err error)
	DeleteAll(ctx context.Context) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.StudySession) error
	GetByID(ctx context.Context, id string) (*domain.StudySession, error)
	Update(ctx context.Context, s *domain.StudySession) error
	// ListUpcoming returns pending sessions scheduled within [from, to],
	// ordered ascending by scheduled time.
	ListUpcoming(ctx context.Context, from, to time.Time) ([]UpcomingSession, error)
	// NextUpcoming returns the earliest pending session at or after from,
	// or nil when none exists.
	NextUpcoming(ctx context.Context, from time.Time) (*UpcomingSession, error)
	ListMissed(ctx context.Context) ([]UpcomingSession, error)
	// FirstScheduled returns the oldest still-scheduled session for a
	// chapter, or nil when the chapter has none.
	FirstScheduled(ctx context.Context, chapterID string) (*domain.StudySession, error)
	CountScheduled(ctx context.Context, chapterID string) (int, error)
	StatusCounts(ctx context.Context) (SessionCounts, error)
	// DailyCompletions returns per-day completed session counts for the
	// `days` calendar days ending at `until`, oldest first.
	DailyCompletions(ctx context.Context, until time.Time, days int) ([]DailyCompletion, error)
	DeleteAll(ctx context.Context) error
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.StudyPlan) error
	GetByID(ctx context.Context, id string) (*domain.StudyPlan, error)
	GetActive(ctx context.Context) (*domain.StudyPlan, error)
	DeactivateAll(ctx context.Context, now time.Time) error
	DeleteAll(ctx context.Context) error
}

type AdaptationRepo interface {
	Create(ctx context.Context, a *domain.ScheduleAdaptation) error
	// ListRecent returns up to limit audit records, newest first, resolved
	// to chapter and subject names.
	ListRecent(ctx context.Context, limit int) ([]AdaptationRecord, error)
	CountBySession(ctx context.Context, sessionID string) (int, error)
	DeleteAll(ctx context.Context) error
}
