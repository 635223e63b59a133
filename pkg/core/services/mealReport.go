package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/mountain-ministry/shuttle-signup/pkg/core/dateutil"
	"github.com/mountain-ministry/shuttle-signup/pkg/core/signup"
	"github.com/mountain-ministry/shuttle-signup/pkg/db"
)

// MealDayCount is the headcount for one event day, handed to the kitchen.
type MealDayCount struct {
	Date      string
	Breakfast int
	Lunch     int
	Dinner    int
}

// MealReport tallies booked meals per day for an event. Meal entries
// referencing dates outside the event's current range are ignored, matching
// normalization's scope filter.
func MealReport(
	ctx context.Context,
	events db.EventStore,
	signups db.SignupStore,
	logger *zap.Logger,
	eventID string,
) ([]MealDayCount, error) {
	event, err := events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s not found", eventID)
	}

	eventSignups, err := signups.GetSignupsForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signups: %w", err)
	}

	allowed := dateutil.DatesInRange(event.StartDate, event.EndDate)
	counts := make(map[string]*MealDayCount, len(allowed))
	for _, d := range allowed {
		counts[d] = &MealDayCount{Date: d}
	}

	for _, s := range eventSignups {
		for _, m := range s.Meals {
			day, ok := counts[m.Date]
			if !ok {
				continue
			}
			switch m.Type {
			case signup.MealBreakfast:
				day.Breakfast++
			case signup.MealLunch:
				day.Lunch++
			case signup.MealDinner:
				day.Dinner++
			}
		}
	}

	report := make([]MealDayCount, 0, len(counts))
	for _, day := range counts {
		report = append(report, *day)
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Date < report[j].Date })

	logger.Info("Meal report built",
		zap.String("event_id", eventID),
		zap.Int("days", len(report)),
		zap.Int("signups", len(eventSignups)))
	return report, nil
}
