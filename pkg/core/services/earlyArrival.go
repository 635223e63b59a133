package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mountain-ministry/shuttle-signup/pkg/core/signup"
	"github.com/mountain-ministry/shuttle-signup/pkg/db"
)

// ReviewEarlyArrival records the admin decision on a pending early-arrival
// request. Approval keeps the requested arrival date; rejection reverts the
// arrival date to the event's official start, the reversion the validator
// records the intent for but never performs itself.
func ReviewEarlyArrival(
	ctx context.Context,
	events db.EventStore,
	signups db.SignupStore,
	logger *zap.Logger,
	eventID, volunteerID string,
	approve bool,
) error {
	record, err := signups.GetSignup(ctx, eventID, volunteerID)
	if err != nil {
		return fmt.Errorf("failed to fetch signup: %w", err)
	}
	if record == nil {
		return fmt.Errorf("no signup found for event %s volunteer %s", eventID, volunteerID)
	}
	if record.EarlyArrival == nil {
		return fmt.Errorf("signup %s has no early-arrival request", record.ID)
	}
	if record.EarlyArrival.Status != signup.EarlyArrivalPending {
		return fmt.Errorf("early-arrival request for signup %s is already %s", record.ID, record.EarlyArrival.Status)
	}

	status := signup.EarlyArrivalApproved
	arrivalDate := record.ArrivalDate
	if !approve {
		status = signup.EarlyArrivalRejected

		event, err := events.GetEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("failed to fetch event: %w", err)
		}
		if event == nil {
			return fmt.Errorf("event %s not found", eventID)
		}
		arrivalDate = event.StartDate
	}

	if err := signups.UpdateEarlyArrival(ctx, eventID, volunteerID, string(status), arrivalDate); err != nil {
		return fmt.Errorf("failed to update early-arrival request: %w", err)
	}

	logger.Info("Early-arrival request reviewed",
		zap.String("event_id", eventID),
		zap.String("volunteer_id", volunteerID),
		zap.String("status", string(status)),
		zap.String("arrival_date", arrivalDate))
	return nil
}
