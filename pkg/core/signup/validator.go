package signup

import (
	"sort"

	"github.com/mountain-ministry/shuttle-signup/pkg/core/dateutil"
	"github.com/mountain-ministry/shuttle-signup/pkg/core/shuttle"
)

// mealOrder fixes the within-day sort order of normalized meal entries.
var mealOrder = map[MealType]int{MealBreakfast: 0, MealLunch: 1, MealDinner: 2}

// ValidateAndNormalize checks a draft against the event and produces the
// normalized declaration, or the full set of field-level errors when the
// draft is not submittable. Errors are collected in one pass, never
// fail-fast, so the form can surface them together.
//
// Responsibilities, in order: location defaulting, derived arrival and
// departure dates (including the early-arrival shift), required-field
// validation, and scope filtering of days and meals against the event's
// date range.
func ValidateAndNormalize(eventID, volunteerID string, draft Draft, event Event) (*Declaration, FieldErrors) {
	errs := FieldErrors{}

	// A shuttle rider who never touched the location dropdown implicitly
	// selected its first option. Make that default explicit here rather
	// than an accident of UI initial state.
	if draft.TransportMode == shuttle.ModeShuttle && draft.ArrivalLocation == "" {
		draft.ArrivalLocation = shuttle.Locations[0]
	}
	if draft.DepartureMode == shuttle.ModeShuttle && draft.DepartureLocation == "" {
		draft.DepartureLocation = shuttle.Locations[0]
	}

	if len(draft.AttendingDays) == 0 {
		errs["attendingDays"] = "no attendance day selected"
	}

	if draft.TransportMode == shuttle.ModeShuttle {
		if draft.ArrivalLocation == "" {
			errs["arrivalLocation"] = "arrival location is required"
		}
		if draft.ArrivalTime == "" {
			errs["arrivalTime"] = "arrival time is required"
		}
	}
	if draft.DepartureMode == shuttle.ModeShuttle {
		if draft.DepartureLocation == "" {
			errs["departureLocation"] = "departure location is required"
		}
		if draft.DepartureTime == "" {
			errs["departureTime"] = "departure time is required"
		}
	}

	if draft.EarlyArrival != nil && (draft.EarlyArrival.Days < 1 || draft.EarlyArrival.Days > 5) {
		errs["earlyArrival"] = "early arrival must be 1 to 5 days before the event start"
	}

	if errs.HasErrors() {
		return nil, errs
	}

	// Scope filtering: guard against stale client data referencing dates
	// from a previously edited event. Drift here is recoverable and
	// expected after an event's dates change, so it is corrected silently.
	allowed := dateutil.DatesInRange(event.StartDate, event.EndDate)
	allowedSet := make(map[string]bool, len(allowed))
	for _, d := range allowed {
		allowedSet[d] = true
	}
	offered := make(map[string]DayMeals, len(event.MealsConfig))
	for _, dm := range event.MealsConfig {
		offered[dm.Date] = dm
	}

	days := make([]string, 0, len(draft.AttendingDays))
	for _, d := range draft.AttendingDays {
		if allowedSet[d] {
			days = append(days, d)
		}
	}
	sort.Strings(days)

	meals := make([]Meal, 0, len(draft.Meals))
	for _, m := range draft.Meals {
		if !allowedSet[m.Date] {
			continue
		}
		if dm, ok := offered[m.Date]; !ok || !dm.Offers(m.Type) {
			continue
		}
		meals = append(meals, m)
	}
	sort.Slice(meals, func(i, j int) bool {
		if meals[i].Date != meals[j].Date {
			return meals[i].Date < meals[j].Date
		}
		return mealOrder[meals[i].Type] < mealOrder[meals[j].Type]
	})

	decl := &Declaration{
		EventID:           eventID,
		VolunteerID:       volunteerID,
		AttendingDays:     days,
		Meals:             meals,
		TransportMode:     draft.TransportMode,
		ArrivalLocation:   draft.ArrivalLocation,
		ArrivalTime:       draft.ArrivalTime,
		DepartureMode:     draft.DepartureMode,
		DepartureLocation: draft.DepartureLocation,
		DepartureTime:     draft.DepartureTime,
		Notes:             draft.Notes,
	}

	// Arrival date is normally the first attending day, but an early-arrival
	// exception pins it before the official start regardless of attending
	// days. The declaration is accepted provisionally; if the request is
	// later rejected the admin collaborator reverts the date, not this
	// validator.
	if draft.EarlyArrival != nil {
		decl.ArrivalDate = dateutil.ShiftDate(event.StartDate, -draft.EarlyArrival.Days)
		decl.EarlyArrival = &EarlyArrival{
			Days:   draft.EarlyArrival.Days,
			Reason: draft.EarlyArrival.Reason,
			Status: EarlyArrivalPending,
		}
	} else if len(days) > 0 {
		decl.ArrivalDate = days[0]
	}
	if len(days) > 0 {
		decl.DepartureDate = days[len(days)-1]
	}

	return decl, nil
}
