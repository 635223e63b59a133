package postgres

import (
	"context"
	"fmt"

	"github.com/mountain-ministry/shuttle-signup/pkg/db"
)

// GetVolunteers retrieves all volunteer records
func (d *DB) GetVolunteers(ctx context.Context) ([]db.Volunteer, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, email, phone, role, approved
		FROM volunteer
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteers: %w", err)
	}
	defer rows.Close()

	var volunteers []db.Volunteer
	for rows.Next() {
		var v db.Volunteer
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Role, &v.Approved); err != nil {
			return nil, fmt.Errorf("failed to scan volunteer: %w", err)
		}
		volunteers = append(volunteers, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating volunteers: %w", err)
	}

	return volunteers, nil
}

// InsertVolunteer inserts a new volunteer record
func (d *DB) InsertVolunteer(ctx context.Context, v *db.Volunteer) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO volunteer (id, name, email, phone, role, approved)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, v.ID, v.Name, v.Email, v.Phone, v.Role, v.Approved)
	if err != nil {
		return fmt.Errorf("failed to insert volunteer: %w", err)
	}
	return nil
}
