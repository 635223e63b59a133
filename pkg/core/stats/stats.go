// Package stats computes volunteer service statistics from historical
// signups and the set of still-existing events. Declarations whose event has
// been removed are excluded everywhere so soft-deleted events never inflate
// a volunteer's record.
package stats

import (
	"time"

	"github.com/mountain-ministry/shuttle-signup/pkg/core/dateutil"
)

// SignupRecord is the slice of a declaration the calculator needs.
type SignupRecord struct {
	VolunteerID string
	EventID     string
}

// EventRecord identifies an existing event and its start date.
type EventRecord struct {
	ID        string
	StartDate string // YYYY-MM-DD
}

// Stats is one volunteer's service record.
type Stats struct {
	// TotalCount is the lifetime number of counted declarations.
	TotalCount int
	// ConsecutiveMonths is the length of the service streak ending at the
	// reference month, 0 when the reference month itself has no service.
	ConsecutiveMonths int
}

// ComputeStats derives a volunteer's lifetime count and consecutive-month
// streak as of the given YYYY-MM month. The reference month is an explicit
// parameter rather than the ambient clock. Absence of data yields zero
// values, never an error.
func ComputeStats(volunteerID string, signups []SignupRecord, events []EventRecord, asOfMonth string) Stats {
	months := serviceMonths(volunteerID, signups, events)

	total := 0
	for _, s := range signups {
		if s.VolunteerID == volunteerID {
			if _, exists := eventStart(events, s.EventID); exists {
				total++
			}
		}
	}

	streak := 0
	for month := asOfMonth; months[month]; month = dateutil.PrevMonth(month) {
		streak++
	}

	return Stats{TotalCount: total, ConsecutiveMonths: streak}
}

// MonthlyCounts returns the number of counted declarations per month over
// [startMonth, endMonth] inclusive, one entry per month even when zero. Used
// for the volunteer's service-history grid.
func MonthlyCounts(volunteerID string, signups []SignupRecord, events []EventRecord, startMonth, endMonth string) map[string]int {
	counts := make(map[string]int)
	if startMonth == "" || endMonth == "" || startMonth > endMonth {
		return counts
	}
	if _, err := time.Parse(dateutil.MonthLayout, startMonth); err != nil {
		return counts
	}
	if _, err := time.Parse(dateutil.MonthLayout, endMonth); err != nil {
		return counts
	}
	for month := startMonth; month <= endMonth; month = dateutil.NextMonth(month) {
		counts[month] = 0
	}

	for _, s := range signups {
		if s.VolunteerID != volunteerID {
			continue
		}
		start, exists := eventStart(events, s.EventID)
		if !exists {
			continue
		}
		month := dateutil.MonthOf(start)
		if _, tracked := counts[month]; tracked {
			counts[month]++
		}
	}
	return counts
}

// serviceMonths builds the set of distinct months in which the volunteer has
// at least one counted declaration, keyed by the event's start month.
func serviceMonths(volunteerID string, signups []SignupRecord, events []EventRecord) map[string]bool {
	months := make(map[string]bool)
	for _, s := range signups {
		if s.VolunteerID != volunteerID {
			continue
		}
		if start, exists := eventStart(events, s.EventID); exists {
			months[dateutil.MonthOf(start)] = true
		}
	}
	return months
}

func eventStart(events []EventRecord, eventID string) (string, bool) {
	for _, e := range events {
		if e.ID == eventID {
			return e.StartDate, true
		}
	}
	return "", false
}
