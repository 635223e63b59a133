package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mountain-ministry/shuttle-signup/pkg/core/signup"
	"github.com/mountain-ministry/shuttle-signup/pkg/db"
)

const signupColumns = `id, event_id, volunteer_id, attending_days, meals,
	transport_mode, arrival_location, arrival_date, arrival_time,
	departure_mode, departure_location, departure_date, departure_time,
	early_arrival, notes, submission_date`

// GetSignupsForEvent retrieves all signup records for an event, oldest first
func (d *DB) GetSignupsForEvent(ctx context.Context, eventID string) ([]db.Signup, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+signupColumns+`
		FROM signup
		WHERE event_id = $1
		ORDER BY submission_date
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query signups for event: %w", err)
	}
	defer rows.Close()

	return collectSignups(rows)
}

// GetSignupsForVolunteer retrieves all signup records for a volunteer across events
func (d *DB) GetSignupsForVolunteer(ctx context.Context, volunteerID string) ([]db.Signup, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+signupColumns+`
		FROM signup
		WHERE volunteer_id = $1
		ORDER BY submission_date
	`, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query signups for volunteer: %w", err)
	}
	defer rows.Close()

	return collectSignups(rows)
}

// GetSignup retrieves the signup for an (event, volunteer) pair, or nil if none exists
func (d *DB) GetSignup(ctx context.Context, eventID, volunteerID string) (*db.Signup, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+signupColumns+`
		FROM signup
		WHERE event_id = $1 AND volunteer_id = $2
	`, eventID, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query signup: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading signup: %w", err)
		}
		return nil, nil
	}

	return scanSignup(rows)
}

// UpsertSignup inserts a signup record, replacing any existing record for the
// same (event, volunteer) pair wholesale.
func (d *DB) UpsertSignup(ctx context.Context, s *db.Signup) error {
	meals, err := json.Marshal(mealsOrEmpty(s.Meals))
	if err != nil {
		return fmt.Errorf("failed to encode meals: %w", err)
	}

	days := s.AttendingDays
	if days == nil {
		days = []string{}
	}

	var earlyArrival []byte
	if s.EarlyArrival != nil {
		earlyArrival, err = json.Marshal(s.EarlyArrival)
		if err != nil {
			return fmt.Errorf("failed to encode early arrival: %w", err)
		}
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO signup (`+signupColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (event_id, volunteer_id) DO UPDATE SET
			attending_days = EXCLUDED.attending_days,
			meals = EXCLUDED.meals,
			transport_mode = EXCLUDED.transport_mode,
			arrival_location = EXCLUDED.arrival_location,
			arrival_date = EXCLUDED.arrival_date,
			arrival_time = EXCLUDED.arrival_time,
			departure_mode = EXCLUDED.departure_mode,
			departure_location = EXCLUDED.departure_location,
			departure_date = EXCLUDED.departure_date,
			departure_time = EXCLUDED.departure_time,
			early_arrival = EXCLUDED.early_arrival,
			notes = EXCLUDED.notes,
			submission_date = EXCLUDED.submission_date
	`, s.ID, s.EventID, s.VolunteerID, days, meals,
		s.TransportMode, s.ArrivalLocation, s.ArrivalDate, s.ArrivalTime,
		s.DepartureMode, s.DepartureLocation, s.DepartureDate, s.DepartureTime,
		earlyArrival, s.Notes, s.SubmissionDate)
	if err != nil {
		return fmt.Errorf("failed to upsert signup: %w", err)
	}

	return nil
}

// UpdateEarlyArrival records a review decision on a pending early arrival
// request and moves the arrival date accordingly.
func (d *DB) UpdateEarlyArrival(ctx context.Context, eventID, volunteerID, status, arrivalDate string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE signup
		SET early_arrival = jsonb_set(early_arrival, '{status}', to_jsonb($3::text)),
			arrival_date = $4
		WHERE event_id = $1 AND volunteer_id = $2 AND early_arrival IS NOT NULL
	`, eventID, volunteerID, status, arrivalDate)
	if err != nil {
		return fmt.Errorf("failed to update early arrival: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no early arrival request found for volunteer %s on event %s", volunteerID, eventID)
	}
	return nil
}

func collectSignups(rows pgx.Rows) ([]db.Signup, error) {
	var signups []db.Signup
	for rows.Next() {
		s, err := scanSignup(rows)
		if err != nil {
			return nil, err
		}
		signups = append(signups, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating signups: %w", err)
	}

	return signups, nil
}

func scanSignup(rows pgx.Rows) (*db.Signup, error) {
	var s db.Signup
	var meals, earlyArrival []byte
	if err := rows.Scan(&s.ID, &s.EventID, &s.VolunteerID, &s.AttendingDays, &meals,
		&s.TransportMode, &s.ArrivalLocation, &s.ArrivalDate, &s.ArrivalTime,
		&s.DepartureMode, &s.DepartureLocation, &s.DepartureDate, &s.DepartureTime,
		&earlyArrival, &s.Notes, &s.SubmissionDate); err != nil {
		return nil, fmt.Errorf("failed to scan signup: %w", err)
	}

	if len(meals) > 0 {
		if err := json.Unmarshal(meals, &s.Meals); err != nil {
			return nil, fmt.Errorf("failed to decode meals for signup %s: %w", s.ID, err)
		}
	}
	if len(earlyArrival) > 0 {
		var ea signup.EarlyArrival
		if err := json.Unmarshal(earlyArrival, &ea); err != nil {
			return nil, fmt.Errorf("failed to decode early arrival for signup %s: %w", s.ID, err)
		}
		s.EarlyArrival = &ea
	}

	return &s, nil
}

func mealsOrEmpty(meals []signup.Meal) []signup.Meal {
	if meals == nil {
		return []signup.Meal{}
	}
	return meals
}
