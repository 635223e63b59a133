package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mountain-ministry/shuttle-signup/pkg/core/signup"
	"github.com/mountain-ministry/shuttle-signup/pkg/core/shuttle"
	"github.com/mountain-ministry/shuttle-signup/pkg/db"
)

func testEvent(open bool) db.Event {
	return db.Event{
		ID:        "event-1",
		Title:     "September Prayer Retreat",
		StartDate: "2024-09-10",
		EndDate:   "2024-09-12",
		MealsConfig: []signup.DayMeals{
			{Date: "2024-09-10", Lunch: true, Dinner: true},
			{Date: "2024-09-11", Breakfast: true, Lunch: true, Dinner: true},
			{Date: "2024-09-12", Breakfast: true, Lunch: true},
		},
		RegistrationOpen: open,
	}
}

func testDraft() signup.Draft {
	return signup.Draft{
		AttendingDays:     []string{"2024-09-10", "2024-09-11", "2024-09-12"},
		Meals:             []signup.Meal{{Date: "2024-09-11", Type: signup.MealLunch}},
		TransportMode:     shuttle.ModeShuttle,
		ArrivalLocation:   shuttle.LocationZhunan,
		ArrivalTime:       "09:00",
		DepartureMode:     shuttle.ModeShuttle,
		DepartureLocation: shuttle.LocationZhunan,
		DepartureTime:     "14:00",
	}
}

// Submissions well before the meal-lock deadline
var beforeLock = time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

func TestSubmitSignup_NewSignup(t *testing.T) {
	mock := &mockStore{events: []db.Event{testEvent(true)}}
	mailer := &mockMailer{}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := SubmitSignup(ctx, mock, mock, mock, mailer, logger, "event-1", "vol-1", testDraft(), beforeLock)
	require.NoError(t, err)
	require.NotNil(t, result.Signup)
	assert.False(t, result.FieldErrors.HasErrors())

	// Record persisted with a generated ID and derived dates
	require.Len(t, mock.upserted, 1)
	saved := mock.upserted[0]
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "event-1", saved.EventID)
	assert.Equal(t, "vol-1", saved.VolunteerID)
	assert.Equal(t, "2024-09-10", saved.ArrivalDate)
	assert.Equal(t, "2024-09-12", saved.DepartureDate)
	assert.Equal(t, beforeLock.Format(time.RFC3339), saved.SubmissionDate)

	// No notification on an open event
	assert.Empty(t, mailer.sent)
}

func TestSubmitSignup_EditKeepsExistingID(t *testing.T) {
	mock := &mockStore{
		events: []db.Event{testEvent(true)},
		signups: []db.Signup{{
			ID:          "signup-1",
			EventID:     "event-1",
			VolunteerID: "vol-1",
			Meals:       []signup.Meal{{Date: "2024-09-11", Type: signup.MealLunch}},
		}},
	}
	logger := zap.NewNop()

	result, err := SubmitSignup(context.Background(), mock, mock, mock, &mockMailer{}, logger, "event-1", "vol-1", testDraft(), beforeLock)
	require.NoError(t, err)
	require.NotNil(t, result.Signup)
	assert.Equal(t, "signup-1", result.Signup.ID)
}

func TestSubmitSignup_ValidationErrors(t *testing.T) {
	mock := &mockStore{events: []db.Event{testEvent(true)}}
	logger := zap.NewNop()

	draft := testDraft()
	draft.AttendingDays = nil

	result, err := SubmitSignup(context.Background(), mock, mock, mock, &mockMailer{}, logger, "event-1", "vol-1", draft, beforeLock)
	require.NoError(t, err)
	assert.Nil(t, result.Signup)
	assert.Equal(t, "no attendance day selected", result.FieldErrors["attendingDays"])

	// Nothing persisted on a rejected draft
	assert.Empty(t, mock.upserted)
}

func TestSubmitSignup_EventNotFound(t *testing.T) {
	mock := &mockStore{}
	logger := zap.NewNop()

	result, err := SubmitSignup(context.Background(), mock, mock, mock, &mockMailer{}, logger, "missing", "vol-1", testDraft(), beforeLock)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "event missing not found")
}

func TestSubmitSignup_MealChangesLockedAfterDeadline(t *testing.T) {
	mock := &mockStore{
		events: []db.Event{testEvent(true)},
		signups: []db.Signup{{
			ID:          "signup-1",
			EventID:     "event-1",
			VolunteerID: "vol-1",
			Meals:       []signup.Meal{{Date: "2024-09-11", Type: signup.MealLunch}},
		}},
	}
	logger := zap.NewNop()

	// The kitchen order locks at 07:30 three days before the start
	afterLock := time.Date(2024, 9, 8, 12, 0, 0, 0, time.UTC)

	draft := testDraft()
	draft.Meals = []signup.Meal{{Date: "2024-09-11", Type: signup.MealDinner}}

	result, err := SubmitSignup(context.Background(), mock, mock, mock, &mockMailer{}, logger, "event-1", "vol-1", draft, afterLock)
	require.NoError(t, err)
	assert.Nil(t, result.Signup)
	assert.Equal(t, "meal changes are locked for this event", result.FieldErrors["meals"])
	assert.Empty(t, mock.upserted)
}

func TestSubmitSignup_NewSignupAfterLockCannotAddMeals(t *testing.T) {
	mock := &mockStore{
		events: []db.Event{testEvent(true)},
	}
	logger := zap.NewNop()

	afterLock := time.Date(2024, 9, 8, 12, 0, 0, 0, time.UTC)

	result, err := SubmitSignup(context.Background(), mock, mock, mock, &mockMailer{}, logger, "event-1", "vol-1", testDraft(), afterLock)
	require.NoError(t, err)
	assert.Nil(t, result.Signup)
	assert.Equal(t, "meal changes are locked for this event", result.FieldErrors["meals"])
	assert.Empty(t, mock.upserted)
}

func TestSubmitSignup_NewSignupWithoutMealsPassesAfterLock(t *testing.T) {
	mock := &mockStore{
		events: []db.Event{testEvent(true)},
	}
	logger := zap.NewNop()

	afterLock := time.Date(2024, 9, 8, 12, 0, 0, 0, time.UTC)

	draft := testDraft()
	draft.Meals = nil

	result, err := SubmitSignup(context.Background(), mock, mock, mock, &mockMailer{}, logger, "event-1", "vol-1", draft, afterLock)
	require.NoError(t, err)
	require.NotNil(t, result.Signup)
	assert.Empty(t, result.Signup.Meals)
	assert.Len(t, mock.upserted, 1)
}

func TestSubmitSignup_UnchangedMealsPassAfterDeadline(t *testing.T) {
	mock := &mockStore{
		events: []db.Event{testEvent(true)},
		signups: []db.Signup{{
			ID:          "signup-1",
			EventID:     "event-1",
			VolunteerID: "vol-1",
			Meals:       []signup.Meal{{Date: "2024-09-11", Type: signup.MealLunch}},
		}},
	}
	logger := zap.NewNop()

	afterLock := time.Date(2024, 9, 8, 12, 0, 0, 0, time.UTC)

	result, err := SubmitSignup(context.Background(), mock, mock, mock, &mockMailer{}, logger, "event-1", "vol-1", testDraft(), afterLock)
	require.NoError(t, err)
	require.NotNil(t, result.Signup)
	assert.Len(t, mock.upserted, 1)
}

func TestSubmitSignup_ClosedEventEditNotifiesAdmins(t *testing.T) {
	mock := &mockStore{
		events: []db.Event{testEvent(false)},
		signups: []db.Signup{{
			ID:          "signup-1",
			EventID:     "event-1",
			VolunteerID: "vol-1",
			ArrivalTime: "10:00",
			Meals:       []signup.Meal{{Date: "2024-09-11", Type: signup.MealLunch}},
		}},
		volunteers: []db.Volunteer{
			{ID: "vol-1", Name: "Amy Lin", Role: db.RoleVolunteer, Approved: true},
			{ID: "adm-1", Name: "Admin One", Email: "one@example.com", Role: db.RoleAdmin, Approved: true},
			{ID: "adm-2", Name: "Admin Two", Email: "two@example.com", Role: db.RoleCoreAdmin, Approved: true},
			{ID: "adm-3", Name: "Unapproved", Email: "three@example.com", Role: db.RoleAdmin, Approved: false},
			{ID: "adm-4", Name: "No Email", Role: db.RoleAdmin, Approved: true},
		},
	}
	mailer := &mockMailer{}
	logger := zap.NewNop()

	result, err := SubmitSignup(context.Background(), mock, mock, mock, mailer, logger, "event-1", "vol-1", testDraft(), beforeLock)
	require.NoError(t, err)
	require.NotNil(t, result.Signup)

	// Only approved admins with an email address hear about it
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "one@example.com", mailer.sent[0].to)
	assert.Equal(t, "two@example.com", mailer.sent[1].to)
	assert.Contains(t, mailer.sent[0].subject, "September Prayer Retreat")
	assert.Contains(t, mailer.sent[0].body, "Amy Lin")
	assert.Contains(t, mailer.sent[0].body, "Arrival time")
	assert.Contains(t, mailer.sent[0].body, "was: 10:00")
	assert.Contains(t, mailer.sent[0].body, "now: 09:00")
}

func TestSubmitSignup_ClosedEventFirstSignupDoesNotNotify(t *testing.T) {
	mock := &mockStore{
		events: []db.Event{testEvent(false)},
		volunteers: []db.Volunteer{
			{ID: "adm-1", Name: "Admin One", Email: "one@example.com", Role: db.RoleAdmin, Approved: true},
		},
	}
	mailer := &mockMailer{}
	logger := zap.NewNop()

	result, err := SubmitSignup(context.Background(), mock, mock, mock, mailer, logger, "event-1", "vol-1", testDraft(), beforeLock)
	require.NoError(t, err)
	require.NotNil(t, result.Signup)
	assert.Empty(t, mailer.sent)
}

func TestSubmitSignup_MailFailureDoesNotFailSubmission(t *testing.T) {
	mock := &mockStore{
		events: []db.Event{testEvent(false)},
		signups: []db.Signup{{
			ID:          "signup-1",
			EventID:     "event-1",
			VolunteerID: "vol-1",
			Meals:       []signup.Meal{{Date: "2024-09-11", Type: signup.MealLunch}},
		}},
		volunteers: []db.Volunteer{
			{ID: "adm-1", Name: "Admin One", Email: "one@example.com", Role: db.RoleAdmin, Approved: true},
		},
	}
	mailer := &mockMailer{sendErr: assert.AnError}
	logger := zap.NewNop()

	result, err := SubmitSignup(context.Background(), mock, mock, mock, mailer, logger, "event-1", "vol-1", testDraft(), beforeLock)
	require.NoError(t, err)
	require.NotNil(t, result.Signup)
}
