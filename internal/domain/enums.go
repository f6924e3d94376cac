package domain

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ValidDifficulties is the canonical set of accepted difficulty strings.
var ValidDifficulties = map[string]bool{
	"easy": true, "medium": true, "hard": true,
}

// ParseDifficulty maps a raw string to a Difficulty, defaulting to medium
// for unknown or empty input.
func ParseDifficulty(s string) Difficulty {
	if ValidDifficulties[s] {
		return Difficulty(s)
	}
	return DifficultyMedium
}

type SessionStatus string

const (
	SessionScheduled   SessionStatus = "scheduled"
	SessionCompleted   SessionStatus = "completed"
	SessionMissed      SessionStatus = "missed"
	SessionRescheduled SessionStatus = "rescheduled"
)

// upcomingStatuses are the statuses that count as still-pending on the calendar.
var upcomingStatuses = map[SessionStatus]bool{
	SessionScheduled:   true,
	SessionRescheduled: true,
}

// IsUpcoming reports whether a session in this status still occupies a
// future calendar slot.
func (s SessionStatus) IsUpcoming() bool {
	return upcomingStatuses[s]
}
