// Package signup validates and normalizes a volunteer's attendance
// declaration against an event's date range and meal configuration. The
// validator is pure: it receives its full working set as arguments and
// returns either a normalized declaration or a field-keyed error collection,
// never both.
package signup

import "github.com/mountain-ministry/shuttle-signup/pkg/core/shuttle"

// MealType is one of the three meals an event day can offer.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// Meal is one (date, meal) booking within a declaration.
type Meal struct {
	Date string   `json:"date"`
	Type MealType `json:"type"`
}

// DayMeals is the meal availability for one event day.
type DayMeals struct {
	Date      string `json:"date"`
	Breakfast bool   `json:"breakfast"`
	Lunch     bool   `json:"lunch"`
	Dinner    bool   `json:"dinner"`
}

// Offers reports whether this day offers the given meal.
func (d DayMeals) Offers(t MealType) bool {
	switch t {
	case MealBreakfast:
		return d.Breakfast
	case MealLunch:
		return d.Lunch
	case MealDinner:
		return d.Dinner
	}
	return false
}

// Event is the metadata the validator needs about the owning event.
type Event struct {
	ID               string
	StartDate        string // YYYY-MM-DD
	EndDate          string // YYYY-MM-DD
	MealsConfig      []DayMeals
	RegistrationOpen bool
}

// EarlyArrivalStatus tracks the admin decision on an early-arrival request.
// The volunteer-facing validator only ever moves none -> pending; approval
// and rejection belong exclusively to the admin collaborator.
type EarlyArrivalStatus string

const (
	EarlyArrivalNone     EarlyArrivalStatus = "none"
	EarlyArrivalPending  EarlyArrivalStatus = "pending"
	EarlyArrivalApproved EarlyArrivalStatus = "approved"
	EarlyArrivalRejected EarlyArrivalStatus = "rejected"
)

// EarlyArrival is an exception request to begin attendance before the
// event's official start. A nil *EarlyArrival is the single canonical
// "no exception requested" representation.
type EarlyArrival struct {
	Days   int                `json:"days"` // 1-5 days before the official start
	Reason string             `json:"reason"`
	Status EarlyArrivalStatus `json:"status"`
}

// Draft is the payload a volunteer submits or edits. Zero values mean the
// field was left untouched.
type Draft struct {
	AttendingDays []string `json:"attendingDays"`
	Meals         []Meal   `json:"meals"`

	TransportMode     shuttle.Mode     `json:"transportMode"`
	ArrivalLocation   shuttle.Location `json:"arrivalLocation"`
	ArrivalDate       string           `json:"arrivalDate"`
	ArrivalTime       string           `json:"arrivalTime"`
	DepartureMode     shuttle.Mode     `json:"departureMode"`
	DepartureLocation shuttle.Location `json:"departureLocation"`
	DepartureDate     string           `json:"departureDate"`
	DepartureTime     string           `json:"departureTime"`

	EarlyArrival *EarlyArrival `json:"earlyArrival,omitempty"`
	Notes        string        `json:"notes"`
}

// Declaration is the normalized attendance record ready for persistence.
// AttendingDays and Meals are sorted and scope-filtered; ArrivalDate and
// DepartureDate are derived, with ArrivalDate pinned earlier when an
// early-arrival exception is active.
type Declaration struct {
	EventID     string
	VolunteerID string

	AttendingDays []string
	Meals         []Meal
	ArrivalDate   string
	DepartureDate string

	TransportMode     shuttle.Mode
	ArrivalLocation   shuttle.Location
	ArrivalTime       string
	DepartureMode     shuttle.Mode
	DepartureLocation shuttle.Location
	DepartureTime     string

	EarlyArrival *EarlyArrival
	Notes        string
}

// TransportRequests projects the declaration into the per-direction requests
// the grouping engine consumes. The arrival request travels on ArrivalDate
// and the departure request on DepartureDate.
func (d Declaration) TransportRequests() []shuttle.Request {
	return []shuttle.Request{
		{
			EventID:     d.EventID,
			VolunteerID: d.VolunteerID,
			Direction:   shuttle.DirectionArrival,
			Mode:        d.TransportMode,
			Location:    d.ArrivalLocation,
			Date:        d.ArrivalDate,
			Time:        d.ArrivalTime,
		},
		{
			EventID:     d.EventID,
			VolunteerID: d.VolunteerID,
			Direction:   shuttle.DirectionDeparture,
			Mode:        d.DepartureMode,
			Location:    d.DepartureLocation,
			Date:        d.DepartureDate,
			Time:        d.DepartureTime,
		},
	}
}

// FieldErrors is a field-keyed collection of human-readable validation
// messages, collected in one pass so a form can surface every problem at
// once.
type FieldErrors map[string]string

// HasErrors reports whether any field failed validation.
func (f FieldErrors) HasErrors() bool {
	return len(f) > 0
}
