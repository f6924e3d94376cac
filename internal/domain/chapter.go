package domain

import "time"

type Chapter struct {
	ID             string
	SubjectID      string
	Title          string
	EstimatedHours float64
	Difficulty     Difficulty
	Completed      bool

	// Attached content, both optional.
	Summary       *string
	ReferenceText *string

	CreatedAt time.Time
}
