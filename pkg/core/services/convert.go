// Package services orchestrates the pure core packages against the store
// and mail collaborators. Each service receives its dependencies explicitly
// and returns wrapped errors for collaborator failures; validation outcomes
// are values, not errors.
package services

import (
	"github.com/mountain-ministry/shuttle-signup/pkg/core/shuttle"
	"github.com/mountain-ministry/shuttle-signup/pkg/core/signup"
	"github.com/mountain-ministry/shuttle-signup/pkg/core/stats"
	"github.com/mountain-ministry/shuttle-signup/pkg/db"
)

// Mailer sends notification emails. Satisfied by mailclient.Client.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

func coreEvent(e *db.Event) signup.Event {
	return signup.Event{
		ID:               e.ID,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		MealsConfig:      e.MealsConfig,
		RegistrationOpen: e.RegistrationOpen,
	}
}

// coreDeclaration rebuilds the validated declaration from its persisted form.
func coreDeclaration(s db.Signup) signup.Declaration {
	return signup.Declaration{
		EventID:     s.EventID,
		VolunteerID: s.VolunteerID,

		AttendingDays: s.AttendingDays,
		Meals:         s.Meals,
		ArrivalDate:   s.ArrivalDate,
		DepartureDate: s.DepartureDate,

		TransportMode:     shuttle.Mode(s.TransportMode),
		ArrivalLocation:   shuttle.Location(s.ArrivalLocation),
		ArrivalTime:       s.ArrivalTime,
		DepartureMode:     shuttle.Mode(s.DepartureMode),
		DepartureLocation: shuttle.Location(s.DepartureLocation),
		DepartureTime:     s.DepartureTime,

		EarlyArrival: s.EarlyArrival,
		Notes:        s.Notes,
	}
}

// transportRequests projects persisted signups into the per-direction
// requests the grouping engine and conflict detector consume.
func transportRequests(signups []db.Signup) []shuttle.Request {
	var requests []shuttle.Request
	for _, s := range signups {
		requests = append(requests, coreDeclaration(s).TransportRequests()...)
	}
	return requests
}

func statsRecords(signups []db.Signup) []stats.SignupRecord {
	records := make([]stats.SignupRecord, 0, len(signups))
	for _, s := range signups {
		records = append(records, stats.SignupRecord{
			VolunteerID: s.VolunteerID,
			EventID:     s.EventID,
		})
	}
	return records
}

func eventRecords(events []db.Event) []stats.EventRecord {
	records := make([]stats.EventRecord, 0, len(events))
	for _, e := range events {
		records = append(records, stats.EventRecord{
			ID:        e.ID,
			StartDate: e.StartDate,
		})
	}
	return records
}

// volunteerNames builds the volunteerId -> display name lookup the manifest
// collaborator labels passengers with.
func volunteerNames(volunteers []db.Volunteer) map[string]string {
	names := make(map[string]string, len(volunteers))
	for _, v := range volunteers {
		names[v.ID] = v.Name
	}
	return names
}
