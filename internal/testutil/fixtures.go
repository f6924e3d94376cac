package testutil

import (
	"time"

	"github.com/google/uuid"

	"cramplan/internal/domain"
)

// Subject options
type SubjectOption func(*domain.Subject)

func WithExamDate(d time.Time) SubjectOption {
	return func(s *domain.Subject) {
		s.ExamDate = d
	}
}

func WithSubjectDifficulty(d domain.Difficulty) SubjectOption {
	return func(s *domain.Subject) {
		s.Difficulty = d
	}
}

func WithTotalChapters(n int) SubjectOption {
	return func(s *domain.Subject) {
		s.TotalChapters = n
	}
}

func NewTestSubject(name string, opts ...SubjectOption) *domain.Subject {
	now := time.Now().UTC()
	s := &domain.Subject{
		ID:            uuid.New().String(),
		Name:          name,
		TotalChapters: 3,
		Difficulty:    domain.DifficultyMedium,
		ExamDate:      now.AddDate(0, 1, 0),
		CreatedAt:     now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chapter options
type ChapterOption func(*domain.Chapter)

func WithEstimatedHours(h float64) ChapterOption {
	return func(c *domain.Chapter) {
		c.EstimatedHours = h
	}
}

func WithChapterDifficulty(d domain.Difficulty) ChapterOption {
	return func(c *domain.Chapter) {
		c.Difficulty = d
	}
}

func WithCompleted() ChapterOption {
	return func(c *domain.Chapter) {
		c.Completed = true
	}
}

func WithSummary(summary, reference string) ChapterOption {
	return func(c *domain.Chapter) {
		c.Summary = &summary
		c.ReferenceText = &reference
	}
}

func NewTestChapter(subjectID, title string, opts ...ChapterOption) *domain.Chapter {
	c := &domain.Chapter{
		ID:             uuid.New().String(),
		SubjectID:      subjectID,
		Title:          title,
		EstimatedHours: 2.0,
		Difficulty:     domain.DifficultyMedium,
		CreatedAt:      time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StudySession options
type SessionOption func(*domain.StudySession)

func WithScheduledAt(t time.Time) SessionOption {
	return func(s *domain.StudySession) {
		s.ScheduledAt = t
	}
}

func WithDurationHours(h float64) SessionOption {
	return func(s *domain.StudySession) {
		s.DurationHours = h
	}
}

func WithStatus(st domain.SessionStatus) SessionOption {
	return func(s *domain.StudySession) {
		s.Status = st
	}
}

func WithSessionNotes(n string) SessionOption {
	return func(s *domain.StudySession) {
		s.Notes = n
	}
}

func NewTestSession(chapterID string, opts ...SessionOption) *domain.StudySession {
	now := time.Now().UTC()
	s := &domain.StudySession{
		ID:            uuid.New().String(),
		ChapterID:     chapterID,
		ScheduledAt:   now.AddDate(0, 0, 1),
		DurationHours: 2.0,
		Status:        domain.SessionScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StudyPlan options
type PlanOption func(*domain.StudyPlan)

func WithDateRange(start, end time.Time) PlanOption {
	return func(p *domain.StudyPlan) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithDailyHours(h float64) PlanOption {
	return func(p *domain.StudyPlan) {
		p.DailyHours = h
	}
}

func WithPreferredTimes(times []string) PlanOption {
	return func(p *domain.StudyPlan) {
		p.SetPreferredTimes(times)
	}
}

func WithInactive() PlanOption {
	return func(p *domain.StudyPlan) {
		p.Active = false
	}
}

func NewTestPlan(name string, opts ...PlanOption) *domain.StudyPlan {
	now := time.Now().UTC()
	p := &domain.StudyPlan{
		ID:         uuid.New().String(),
		Name:       name,
		StartDate:  now,
		EndDate:    now.AddDate(0, 0, 14),
		DailyHours: 4.0,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ScheduleAdaptation fixture
func NewTestAdaptation(sessionID, reason string) *domain.ScheduleAdaptation {
	return &domain.ScheduleAdaptation{
		ID:                uuid.New().String(),
		OriginalSessionID: sessionID,
		Reason:            reason,
		Reasoning:         "test reasoning",
		ChangesJSON:       "{}",
		CreatedAt:         time.Now().UTC(),
	}
}
