package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"cramplan/internal/planner"
	"cramplan/internal/repository"
)

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// combineDateTime builds an absolute timestamp from a calendar date and a
// time-of-day string in planner.TimeLayout.
func combineDateTime(date time.Time, timeOfDay string) (time.Time, error) {
	tod, err := time.Parse(planner.TimeLayout, timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), 0, 0, date.Location()), nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// summarizeChanges derives a human-readable description of an applied
// adaptation plan for history review.
func summarizeChanges(plan planner.AdaptationPlan) string {
	var parts []string

	if rm := plan.RescheduleMissed; rm != nil {
		parts = append(parts, fmt.Sprintf("Rescheduled to %s at %s", rm.NewDate, rm.NewTime))
	}
	if n := len(plan.ScheduleAdjustments); n > 0 {
		parts = append(parts, fmt.Sprintf("%d other sessions adjusted", n))
	}

	if len(parts) == 0 {
		return "Schedule optimization applied"
	}
	return strings.Join(parts, "; ")
}
