// Package db defines the persistence records and store interfaces the
// services consume. Implementations live elsewhere (see pkg/postgres); the
// core computation packages never touch these.
package db

import "github.com/mountain-ministry/shuttle-signup/pkg/core/signup"

// Role of a registered account.
type Role string

const (
	RoleCoreAdmin Role = "core_admin"
	RoleAdmin     Role = "admin"
	RoleVolunteer Role = "volunteer"
)

// Volunteer represents a registered volunteer account
type Volunteer struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Role     Role
	Approved bool
}

// Event represents one multi-day event at the venue
type Event struct {
	ID                   string
	SeriesID             string
	Title                string
	StartDate            string // YYYY-MM-DD
	EndDate              string // YYYY-MM-DD
	StartTime            string // HH:MM, start of the first day
	Location             string
	MealsConfig          []signup.DayMeals
	RegistrationOpen     bool
	RegistrationDeadline string
	Remarks              string
}

// Signup is the persisted attendance declaration: one record per
// (event, volunteer) pair, replaced wholesale on each edit.
type Signup struct {
	ID          string
	EventID     string
	VolunteerID string

	AttendingDays []string
	Meals         []signup.Meal

	TransportMode     string
	ArrivalLocation   string
	ArrivalDate       string
	ArrivalTime       string
	DepartureMode     string
	DepartureLocation string
	DepartureDate     string
	DepartureTime     string

	EarlyArrival   *signup.EarlyArrival
	Notes          string
	SubmissionDate string // RFC3339, for sorting
}

// DriverAssignment attaches a driver to a shuttle run. RunKey is the run's
// deterministic composite identity, so the attachment survives regrouping of
// identical inputs.
type DriverAssignment struct {
	EventID  string
	RunKey   string
	DriverID string
}
