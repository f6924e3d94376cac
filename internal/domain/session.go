package domain

import (
	"strings"
	"time"
)

// MissedNotePrefix is stamped onto a session's note when it is marked missed.
// MissReason recovers the reason by stripping it back off.
const MissedNotePrefix = "Missed session. Reason: "

type StudySession struct {
	ID            string
	ChapterID     string
	ScheduledAt   time.Time
	DurationHours float64
	Status        SessionStatus
	ActualStart   *time.Time
	ActualEnd     *time.Time
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MarkMissed transitions the session to missed and records the reason in the
// note field. Re-marking an already-missed session re-applies the note.
func (s *StudySession) MarkMissed(reason string, now time.Time) {
	if reason == "" {
		reason = "Not specified"
	}
	s.Status = SessionMissed
	s.Notes = MissedNotePrefix + reason
	s.UpdatedAt = now
}

// MarkCompleted transitions the session to completed, deriving the actual
// start from the planned duration.
func (s *StudySession) MarkCompleted(notes string, now time.Time) {
	start := now.Add(-time.Duration(s.DurationHours * float64(time.Hour)))
	s.Status = SessionCompleted
	s.ActualStart = &start
	s.ActualEnd = &now
	s.Notes = notes
	s.UpdatedAt = now
}

// MoveTo reschedules a still-pending session in place.
func (s *StudySession) MoveTo(at time.Time, now time.Time) {
	s.ScheduledAt = at
	s.Status = SessionRescheduled
	s.UpdatedAt = now
}

// MissReason returns the reason recorded when the session was marked missed,
// or "Not specified" when no note was recorded.
func (s *StudySession) MissReason() string {
	if s.Notes == "" {
		return "Not specified"
	}
	return strings.TrimPrefix(s.Notes, MissedNotePrefix)
}
