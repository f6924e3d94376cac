package domain

import "time"

// ScheduleAdaptation is an append-only audit record of one applied schedule
// change. It is never mutated after creation; only a full schedule reset
// removes it.
type ScheduleAdaptation struct {
	ID                string
	OriginalSessionID string
	Reason            string
	Reasoning         string

	// ChangesJSON holds the full adaptation plan that was applied,
	// serialized as JSON for later review.
	ChangesJSON string

	CreatedAt time.Time
}
