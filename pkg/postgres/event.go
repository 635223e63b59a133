package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mountain-ministry/shuttle-signup/pkg/core/signup"
	"github.com/mountain-ministry/shuttle-signup/pkg/db"
)

const eventColumns = `id, series_id, title, start_date, end_date, start_time,
	location, meals_config, registration_open, registration_deadline, remarks`

// GetEvents retrieves all event records ordered by start date
func (d *DB) GetEvents(ctx context.Context) ([]db.Event, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM event
		ORDER BY start_date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []db.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// GetEvent retrieves a single event by ID, or nil if none exists
func (d *DB) GetEvent(ctx context.Context, id string) (*db.Event, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM event
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query event: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading event: %w", err)
		}
		return nil, nil
	}

	return scanEvent(rows)
}

func scanEvent(rows pgx.Rows) (*db.Event, error) {
	var e db.Event
	var mealsConfig []byte
	if err := rows.Scan(&e.ID, &e.SeriesID, &e.Title, &e.StartDate, &e.EndDate, &e.StartTime,
		&e.Location, &mealsConfig, &e.RegistrationOpen, &e.RegistrationDeadline, &e.Remarks); err != nil {
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	if len(mealsConfig) > 0 {
		if err := json.Unmarshal(mealsConfig, &e.MealsConfig); err != nil {
			return nil, fmt.Errorf("failed to decode meals config for event %s: %w", e.ID, err)
		}
	}
	return &e, nil
}

// InsertEvent inserts a new event record
func (d *DB) InsertEvent(ctx context.Context, e *db.Event) error {
	mealsConfig, err := encodeMealsConfig(e.MealsConfig)
	if err != nil {
		return fmt.Errorf("failed to encode meals config: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO event (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, e.ID, e.SeriesID, e.Title, e.StartDate, e.EndDate, e.StartTime,
		e.Location, mealsConfig, e.RegistrationOpen, e.RegistrationDeadline, e.Remarks)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

// SetRegistrationOpen opens or closes registration for an event
func (d *DB) SetRegistrationOpen(ctx context.Context, eventID string, open bool) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE event SET registration_open = $2 WHERE id = $1
	`, eventID, open)
	if err != nil {
		return fmt.Errorf("failed to update registration state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("event not found: " + eventID)
	}
	return nil
}

func encodeMealsConfig(config []signup.DayMeals) ([]byte, error) {
	if config == nil {
		config = []signup.DayMeals{}
	}
	return json.Marshal(config)
}
