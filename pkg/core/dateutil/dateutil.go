// Package dateutil provides pure helpers for the YYYY-MM-DD calendar dates
// and HH:MM clock times used throughout the signup system. All functions are
// deterministic; nothing here reads the ambient clock.
package dateutil

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the canonical date format for all stored dates.
	DateLayout = "2006-01-02"
	// MonthLayout is the canonical YYYY-MM format for streak months.
	MonthLayout = "2006-01"

	minutesPerDay = 24 * 60
)

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// DatesInRange enumerates every date from start to end inclusive, ascending.
// Returns an empty slice when either date is invalid or start is after end;
// callers treat an empty result as "no legal dates".
func DatesInRange(start, end string) []string {
	startDate, err := ParseDate(start)
	if err != nil {
		return []string{}
	}
	endDate, err := ParseDate(end)
	if err != nil {
		return []string{}
	}
	if startDate.After(endDate) {
		return []string{}
	}

	var dates []string
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}

// ShiftDate shifts a date by deltaDays, handling month and year rollover.
// Returns the input unchanged if it does not parse.
func ShiftDate(date string, deltaDays int) string {
	d, err := ParseDate(date)
	if err != nil {
		return date
	}
	return d.AddDate(0, 0, deltaDays).Format(DateLayout)
}

// IsInRange reports whether date falls within [start, end] inclusive.
// Lexicographic comparison is valid because the format is zero-padded and
// fixed-width.
func IsInRange(date, start, end string) bool {
	return date >= start && date <= end
}

// FormatDateShort trims YYYY-MM-DD to MM-DD for rendered output.
func FormatDateShort(date string) string {
	if len(date) < 5 {
		return date
	}
	return date[5:]
}

// TimeToMinutes converts an HH:MM clock time to minutes since midnight.
// An empty or malformed time yields 0.
func TimeToMinutes(clock string) int {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0
	}
	return h*60 + m
}

// MinutesToTime converts minutes since midnight back to HH:MM, wrapping
// modulo 24h so departure times computed before midnight never go negative.
func MinutesToTime(minutes int) string {
	m := minutes % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// MonthOf returns the YYYY-MM month of a YYYY-MM-DD date.
func MonthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// PrevMonth returns the YYYY-MM month before the given month.
// Returns the input unchanged if it does not parse.
func PrevMonth(month string) string {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return month
	}
	return t.AddDate(0, -1, 0).Format(MonthLayout)
}

// NextMonth returns the YYYY-MM month after the given month.
// Returns the input unchanged if it does not parse.
func NextMonth(month string) string {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return month
	}
	return t.AddDate(0, 1, 0).Format(MonthLayout)
}

// SeasonRange returns the first and last date of the calendar quarter
// containing asOfDate. Returns empty strings if asOfDate does not parse.
func SeasonRange(asOfDate string) (start, end string) {
	d, err := ParseDate(asOfDate)
	if err != nil {
		return "", ""
	}
	startMonth := time.Month((int(d.Month())-1)/3*3 + 1)
	first := time.Date(d.Year(), startMonth, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 3, -1)
	return first.Format(DateLayout), last.Format(DateLayout)
}
