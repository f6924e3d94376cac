package domain

import "time"

type Subject struct {
	ID            string
	Name          string
	TotalChapters int
	Difficulty    Difficulty
	ExamDate      time.Time
	CreatedAt     time.Time
}
