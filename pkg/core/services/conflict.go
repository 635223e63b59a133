package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mountain-ministry/shuttle-signup/pkg/core/shuttle"
	"github.com/mountain-ministry/shuttle-signup/pkg/db"
)

// CheckShuttleConflict counts how many other volunteers already registered a
// shuttle request at the same station within the proximity window of the
// candidate time. Invoked per field edit to surface a live carpool hint; the
// editing volunteer's own request is excluded before counting.
func CheckShuttleConflict(
	ctx context.Context,
	signups db.SignupStore,
	logger *zap.Logger,
	eventID, volunteerID string,
	direction shuttle.Direction,
	location shuttle.Location,
	candidateTime string,
) (int, error) {
	if candidateTime == "" {
		return 0, nil
	}

	eventSignups, err := signups.GetSignupsForEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch signups: %w", err)
	}

	var others []shuttle.Request
	for _, r := range transportRequests(eventSignups) {
		if r.VolunteerID == volunteerID || r.Location != location {
			continue
		}
		others = append(others, r)
	}

	count := shuttle.CountNearby(candidateTime, direction, others)
	logger.Debug("Shuttle conflict check",
		zap.String("event_id", eventID),
		zap.String("direction", string(direction)),
		zap.String("time", candidateTime),
		zap.Int("nearby", count))
	return count, nil
}
