package services

import (
	"fmt"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/mountain-ministry/shuttle-signup/internal/config"
	"github.com/mountain-ministry/shuttle-signup/pkg/core/dateutil"
)

// UpcomingSeriesDates expands each configured series schedule into its next
// occurrence dates on or after asOfDate, at most count per series. Planners
// use this to decide which events to create next. asOfDate is explicit so
// the expansion is deterministic.
func UpcomingSeriesDates(cfg *config.Config, logger *zap.Logger, asOfDate string, count int) (map[string][]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}
	start, err := dateutil.ParseDate(asOfDate)
	if err != nil {
		return nil, fmt.Errorf("invalid as-of date: %w", err)
	}

	upcoming := make(map[string][]string, len(cfg.SeriesSchedules))
	for _, schedule := range cfg.SeriesSchedules {
		opt, err := rrule.StrToROption(schedule.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule for series %s: %w", schedule.Name, err)
		}
		if opt.Dtstart.IsZero() {
			opt.Dtstart = start
		}

		rule, err := rrule.NewRRule(*opt)
		if err != nil {
			return nil, fmt.Errorf("failed to build rrule for series %s: %w", schedule.Name, err)
		}

		var dates []string
		next := rule.Iterator()
		for {
			occurrence, ok := next()
			if !ok || len(dates) >= count {
				break
			}
			if occurrence.Before(start) {
				continue
			}
			dates = append(dates, occurrence.Format(dateutil.DateLayout))
		}
		upcoming[schedule.Name] = dates
	}

	logger.Debug("Series schedules expanded",
		zap.String("as_of", asOfDate),
		zap.Int("series_count", len(upcoming)))
	return upcoming, nil
}
