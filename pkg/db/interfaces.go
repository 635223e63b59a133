package db

import "context"

// EventStore defines the interface for event database operations
type EventStore interface {
	GetEvents(ctx context.Context) ([]Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
}

// SignupStore defines the interface for signup database operations
type SignupStore interface {
	GetSignupsForEvent(ctx context.Context, eventID string) ([]Signup, error)
	GetSignupsForVolunteer(ctx context.Context, volunteerID string) ([]Signup, error)
	GetSignup(ctx context.Context, eventID, volunteerID string) (*Signup, error)
	UpsertSignup(ctx context.Context, s *Signup) error
	UpdateEarlyArrival(ctx context.Context, eventID, volunteerID, status, arrivalDate string) error
}

// VolunteerStore defines the interface for volunteer database operations
type VolunteerStore interface {
	GetVolunteers(ctx context.Context) ([]Volunteer, error)
}

// DriverStore defines the interface for driver assignment operations
type DriverStore interface {
	GetDriverAssignments(ctx context.Context, eventID string) ([]DriverAssignment, error)
	SetDriverAssignment(ctx context.Context, a *DriverAssignment) error
}
