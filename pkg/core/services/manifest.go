package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mountain-ministry/shuttle-signup/pkg/core/shuttle"
	"github.com/mountain-ministry/shuttle-signup/pkg/db"
)

// ManifestResult bundles the computed runs with their rendered dispatch
// text. Runs are view artifacts; nothing here is persisted.
type ManifestResult struct {
	Runs     []shuttle.Run
	Manifest string
}

// BuildManifest snapshots an event's signups, groups the shuttle requests
// into runs, and renders the dispatch list with any stored driver
// assignments applied.
func BuildManifest(
	ctx context.Context,
	signups db.SignupStore,
	volunteers db.VolunteerStore,
	drivers db.DriverStore,
	logger *zap.Logger,
	eventID string,
) (*ManifestResult, error) {
	logger.Debug("Building shuttle manifest", zap.String("event_id", eventID))

	eventSignups, err := signups.GetSignupsForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signups: %w", err)
	}

	all, err := volunteers.GetVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteers: %w", err)
	}
	names := volunteerNames(all)

	runs := shuttle.GroupRequests(transportRequests(eventSignups), names)

	assignments, err := drivers.GetDriverAssignments(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch driver assignments: %w", err)
	}
	driverNames := make(map[string]string, len(assignments))
	for _, a := range assignments {
		if name, ok := names[a.DriverID]; ok {
			driverNames[a.RunKey] = name
		}
	}

	logger.Info("Manifest built",
		zap.String("event_id", eventID),
		zap.Int("signups", len(eventSignups)),
		zap.Int("runs", len(runs)))

	return &ManifestResult{
		Runs:     runs,
		Manifest: shuttle.RenderManifest(runs, driverNames),
	}, nil
}

// AssignDriver attaches a driver to a run identified by its composite key.
// The key is validated against the runs currently derivable from the
// event's signups so stale keys are rejected instead of silently stored.
func AssignDriver(
	ctx context.Context,
	signups db.SignupStore,
	volunteers db.VolunteerStore,
	drivers db.DriverStore,
	logger *zap.Logger,
	eventID, runKey, driverID string,
) error {
	eventSignups, err := signups.GetSignupsForEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to fetch signups: %w", err)
	}
	all, err := volunteers.GetVolunteers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch volunteers: %w", err)
	}

	runs := shuttle.GroupRequests(transportRequests(eventSignups), volunteerNames(all))
	found := false
	for _, run := range runs {
		if run.Key() == runKey {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("run %s not found for event %s (signups may have changed)", runKey, eventID)
	}

	if err := drivers.SetDriverAssignment(ctx, &db.DriverAssignment{
		EventID:  eventID,
		RunKey:   runKey,
		DriverID: driverID,
	}); err != nil {
		return fmt.Errorf("failed to save driver assignment: %w", err)
	}

	logger.Info("Driver assigned",
		zap.String("event_id", eventID),
		zap.String("run_key", runKey),
		zap.String("driver_id", driverID))
	return nil
}
