package domain

import (
	"encoding/json"
	"time"
)

// DefaultPreferredTimes is used when a plan has no explicit slot preference.
var DefaultPreferredTimes = []string{"09:00-12:00", "14:00-17:00", "19:00-22:00"}

type StudyPlan struct {
	ID          string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	DailyHours  float64

	// PreferredTimesJSON holds the ordered time-of-day slots serialized as a
	// JSON array, empty when unset.
	PreferredTimesJSON string

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PreferredTimes returns the plan's preferred study slots, falling back to
// the default slots when none were stored.
func (p *StudyPlan) PreferredTimes() []string {
	if p.PreferredTimesJSON == "" {
		return DefaultPreferredTimes
	}
	var times []string
	if err := json.Unmarshal([]byte(p.PreferredTimesJSON), &times); err != nil || len(times) == 0 {
		return DefaultPreferredTimes
	}
	return times
}

// SetPreferredTimes stores the given slots as the serialized preference.
func (p *StudyPlan) SetPreferredTimes(times []string) {
	if len(times) == 0 {
		p.PreferredTimesJSON = ""
		return
	}
	data, err := json.Marshal(times)
	if err != nil {
		return
	}
	p.PreferredTimesJSON = string(data)
}
