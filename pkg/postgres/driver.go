package postgres

import (
	"context"
	"fmt"

	"github.com/mountain-ministry/shuttle-signup/pkg/db"
)

// GetDriverAssignments retrieves all driver assignments for an event
func (d *DB) GetDriverAssignments(ctx context.Context, eventID string) ([]db.DriverAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT event_id, run_key, driver_id
		FROM driver_assignment
		WHERE event_id = $1
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query driver assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.DriverAssignment
	for rows.Next() {
		var a db.DriverAssignment
		if err := rows.Scan(&a.EventID, &a.RunKey, &a.DriverID); err != nil {
			return nil, fmt.Errorf("failed to scan driver assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating driver assignments: %w", err)
	}

	return assignments, nil
}

// SetDriverAssignment attaches a driver to a run, replacing any existing
// assignment for the same run.
func (d *DB) SetDriverAssignment(ctx context.Context, a *db.DriverAssignment) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO driver_assignment (event_id, run_key, driver_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, run_key) DO UPDATE SET driver_id = EXCLUDED.driver_id
	`, a.EventID, a.RunKey, a.DriverID)
	if err != nil {
		return fmt.Errorf("failed to set driver assignment: %w", err)
	}
	return nil
}
