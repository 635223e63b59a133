package services

import (
	"context"

	"github.com/mountain-ministry/shuttle-signup/pkg/db"
)

// mockStore implements the db store interfaces over in-memory fixtures
type mockStore struct {
	events      []db.Event
	signups     []db.Signup
	volunteers  []db.Volunteer
	assignments []db.DriverAssignment

	upserted        []*db.Signup
	assignmentsMade []*db.DriverAssignment
	earlyReviews    []earlyReview

	getEventErr       error
	getSignupsErr     error
	upsertErr         error
	setAssignmentErr  error
	updateEarlyErr    error
	getVolunteersErr  error
	getAssignmentsErr error
}

type earlyReview struct {
	eventID     string
	volunteerID string
	status      string
	arrivalDate string
}

func (m *mockStore) GetEvents(ctx context.Context) ([]db.Event, error) {
	if m.getEventErr != nil {
		return nil, m.getEventErr
	}
	return m.events, nil
}

func (m *mockStore) GetEvent(ctx context.Context, id string) (*db.Event, error) {
	if m.getEventErr != nil {
		return nil, m.getEventErr
	}
	for i := range m.events {
		if m.events[i].ID == id {
			return &m.events[i], nil
		}
	}
	return nil, nil
}

func (m *mockStore) GetSignupsForEvent(ctx context.Context, eventID string) ([]db.Signup, error) {
	if m.getSignupsErr != nil {
		return nil, m.getSignupsErr
	}
	var out []db.Signup
	for _, s := range m.signups {
		if s.EventID == eventID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockStore) GetSignupsForVolunteer(ctx context.Context, volunteerID string) ([]db.Signup, error) {
	if m.getSignupsErr != nil {
		return nil, m.getSignupsErr
	}
	var out []db.Signup
	for _, s := range m.signups {
		if s.VolunteerID == volunteerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockStore) GetSignup(ctx context.Context, eventID, volunteerID string) (*db.Signup, error) {
	if m.getSignupsErr != nil {
		return nil, m.getSignupsErr
	}
	for i := range m.signups {
		if m.signups[i].EventID == eventID && m.signups[i].VolunteerID == volunteerID {
			return &m.signups[i], nil
		}
	}
	return nil, nil
}

func (m *mockStore) UpsertSignup(ctx context.Context, s *db.Signup) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, s)
	return nil
}

func (m *mockStore) UpdateEarlyArrival(ctx context.Context, eventID, volunteerID, status, arrivalDate string) error {
	if m.updateEarlyErr != nil {
		return m.updateEarlyErr
	}
	m.earlyReviews = append(m.earlyReviews, earlyReview{
		eventID:     eventID,
		volunteerID: volunteerID,
		status:      status,
		arrivalDate: arrivalDate,
	})
	return nil
}

func (m *mockStore) GetVolunteers(ctx context.Context) ([]db.Volunteer, error) {
	if m.getVolunteersErr != nil {
		return nil, m.getVolunteersErr
	}
	return m.volunteers, nil
}

func (m *mockStore) GetDriverAssignments(ctx context.Context, eventID string) ([]db.DriverAssignment, error) {
	if m.getAssignmentsErr != nil {
		return nil, m.getAssignmentsErr
	}
	return m.assignments, nil
}

func (m *mockStore) SetDriverAssignment(ctx context.Context, a *db.DriverAssignment) error {
	if m.setAssignmentErr != nil {
		return m.setAssignmentErr
	}
	m.assignmentsMade = append(m.assignmentsMade, a)
	return nil
}

// mockMailer records outgoing emails
type mockMailer struct {
	sent    []sentEmail
	sendErr error
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

func (m *mockMailer) SendEmail(to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}
