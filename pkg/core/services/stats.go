package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mountain-ministry/shuttle-signup/pkg/core/stats"
	"github.com/mountain-ministry/shuttle-signup/pkg/db"
)

// VolunteerStats computes a volunteer's lifetime service count and
// consecutive-month streak as of the given YYYY-MM month. Signups whose
// event no longer exists are excluded from both figures.
func VolunteerStats(
	ctx context.Context,
	events db.EventStore,
	signups db.SignupStore,
	logger *zap.Logger,
	volunteerID, asOfMonth string,
) (stats.Stats, error) {
	volunteerSignups, err := signups.GetSignupsForVolunteer(ctx, volunteerID)
	if err != nil {
		return stats.Stats{}, fmt.Errorf("failed to fetch signups: %w", err)
	}
	allEvents, err := events.GetEvents(ctx)
	if err != nil {
		return stats.Stats{}, fmt.Errorf("failed to fetch events: %w", err)
	}

	result := stats.ComputeStats(volunteerID, statsRecords(volunteerSignups), eventRecords(allEvents), asOfMonth)
	logger.Debug("Volunteer stats computed",
		zap.String("volunteer_id", volunteerID),
		zap.String("as_of_month", asOfMonth),
		zap.Int("total", result.TotalCount),
		zap.Int("streak", result.ConsecutiveMonths))
	return result, nil
}

// MonthlyStats returns the volunteer's per-month counted signups over
// [startMonth, endMonth] inclusive, for the service-history grid.
func MonthlyStats(
	ctx context.Context,
	events db.EventStore,
	signups db.SignupStore,
	logger *zap.Logger,
	volunteerID, startMonth, endMonth string,
) (map[string]int, error) {
	volunteerSignups, err := signups.GetSignupsForVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signups: %w", err)
	}
	allEvents, err := events.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	return stats.MonthlyCounts(volunteerID, statsRecords(volunteerSignups), eventRecords(allEvents), startMonth, endMonth), nil
}
