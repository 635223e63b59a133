package signup

import (
	"time"

	"github.com/mountain-ministry/shuttle-signup/pkg/core/dateutil"
)

// Meal edits lock at 07:30 three days before the event starts, when the
// kitchen order is placed.
const mealLockDaysBefore = 3

// MealsLocked reports whether meal edits for an event starting on
// eventStartDate are locked as of the given instant. The reference time is
// an explicit parameter so callers stay deterministic and testable.
func MealsLocked(eventStartDate string, asOf time.Time) bool {
	start, err := dateutil.ParseDate(eventStartDate)
	if err != nil {
		return false
	}
	deadline := time.Date(start.Year(), start.Month(), start.Day(), 7, 30, 0, 0, asOf.Location()).
		AddDate(0, 0, -mealLockDaysBefore)
	return asOf.After(deadline)
}

// EventPast reports whether the event ended strictly before asOfDate, i.e.
// yesterday was its last day.
func EventPast(endDate, asOfDate string) bool {
	return endDate < asOfDate
}
