package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mountain-ministry/shuttle-signup/pkg/core/signup"
	"github.com/mountain-ministry/shuttle-signup/pkg/db"
)

// SubmitResult is the outcome of a signup submission. Exactly one of Signup
// and FieldErrors is set.
type SubmitResult struct {
	Signup      *db.Signup
	FieldErrors signup.FieldErrors
}

// SubmitSignup validates a volunteer's draft against the event and persists
// the normalized declaration, replacing any previous declaration for the
// same (event, volunteer) pair. When the event's registration is already
// closed, approved admins are emailed a field-by-field summary of what
// changed so they can double-check late edits. asOf is the submission
// instant, threaded explicitly for the meal-lock check.
func SubmitSignup(
	ctx context.Context,
	events db.EventStore,
	signups db.SignupStore,
	volunteers db.VolunteerStore,
	mailer Mailer,
	logger *zap.Logger,
	eventID, volunteerID string,
	draft signup.Draft,
	asOf time.Time,
) (*SubmitResult, error) {
	logger.Info("Submitting signup",
		zap.String("event_id", eventID),
		zap.String("volunteer_id", volunteerID))

	event, err := events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s not found", eventID)
	}

	existing, err := signups.GetSignup(ctx, eventID, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing signup: %w", err)
	}

	decl, fieldErrs := signup.ValidateAndNormalize(eventID, volunteerID, draft, coreEvent(event))
	if fieldErrs.HasErrors() {
		logger.Info("Signup rejected by validation", zap.Int("error_count", len(fieldErrs)))
		return &SubmitResult{FieldErrors: fieldErrs}, nil
	}

	// Meal edits lock once the kitchen order is placed. A first-time signup
	// after the deadline cannot carry meals either; only selections identical
	// to what the kitchen already has pass.
	var existingMeals []signup.Meal
	if existing != nil {
		existingMeals = existing.Meals
	}
	if signup.MealsLocked(event.StartDate, asOf) && !mealsEqual(existingMeals, decl.Meals) {
		return &SubmitResult{FieldErrors: signup.FieldErrors{
			"meals": "meal changes are locked for this event",
		}}, nil
	}

	record := declarationToRecord(decl, asOf)
	if existing != nil {
		record.ID = existing.ID
	} else {
		record.ID = uuid.New().String()
	}

	if err := signups.UpsertSignup(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save signup: %w", err)
	}

	logger.Info("Signup saved",
		zap.String("signup_id", record.ID),
		zap.Int("attending_days", len(record.AttendingDays)),
		zap.Bool("early_arrival", record.EarlyArrival != nil))

	if !event.RegistrationOpen && existing != nil {
		if err := notifyClosedEventEdit(ctx, volunteers, mailer, logger, event, existing, record); err != nil {
			// Notification failures never fail the submission itself.
			logger.Warn("Failed to notify admins of closed-event edit", zap.Error(err))
		}
	}

	return &SubmitResult{Signup: record}, nil
}

func declarationToRecord(decl *signup.Declaration, asOf time.Time) *db.Signup {
	return &db.Signup{
		EventID:           decl.EventID,
		VolunteerID:       decl.VolunteerID,
		AttendingDays:     decl.AttendingDays,
		Meals:             decl.Meals,
		TransportMode:     string(decl.TransportMode),
		ArrivalLocation:   string(decl.ArrivalLocation),
		ArrivalDate:       decl.ArrivalDate,
		ArrivalTime:       decl.ArrivalTime,
		DepartureMode:     string(decl.DepartureMode),
		DepartureLocation: string(decl.DepartureLocation),
		DepartureDate:     decl.DepartureDate,
		DepartureTime:     decl.DepartureTime,
		EarlyArrival:      decl.EarlyArrival,
		Notes:             decl.Notes,
		SubmissionDate:    asOf.UTC().Format(time.RFC3339),
	}
}

func mealsEqual(a, b []signup.Meal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// notifyClosedEventEdit emails every approved admin a summary of what the
// volunteer changed on a closed event.
func notifyClosedEventEdit(
	ctx context.Context,
	volunteers db.VolunteerStore,
	mailer Mailer,
	logger *zap.Logger,
	event *db.Event,
	old, updated *db.Signup,
) error {
	all, err := volunteers.GetVolunteers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch volunteers: %w", err)
	}

	var volunteerName string
	var admins []db.Volunteer
	for _, v := range all {
		if v.ID == updated.VolunteerID {
			volunteerName = v.Name
		}
		if v.Approved && v.Email != "" && (v.Role == db.RoleAdmin || v.Role == db.RoleCoreAdmin) {
			admins = append(admins, v)
		}
	}
	if volunteerName == "" {
		volunteerName = updated.VolunteerID
	}
	if len(admins) == 0 {
		logger.Warn("No admins to notify about closed-event edit")
		return nil
	}

	changes := signupChanges(old, updated)
	subject := fmt.Sprintf("Signup changed after registration closed - %s", event.Title)
	body := buildChangeSummary(event, volunteerName, changes)

	for _, admin := range admins {
		if err := mailer.SendEmail(admin.Email, subject, body); err != nil {
			logger.Warn("Failed to send notification",
				zap.String("recipient", admin.Email),
				zap.Error(err))
			continue
		}
		logger.Debug("Notification sent", zap.String("recipient", admin.Email))
	}
	return nil
}

type fieldChange struct {
	Field string
	Old   string
	New   string
}

// signupChanges diffs the fields an admin cares about when reviewing a late
// edit.
func signupChanges(old, updated *db.Signup) []fieldChange {
	var changes []fieldChange
	add := func(field, oldVal, newVal string) {
		if oldVal != newVal {
			changes = append(changes, fieldChange{Field: field, Old: orNone(oldVal), New: orNone(newVal)})
		}
	}

	add("Arrival transport", old.TransportMode, updated.TransportMode)
	add("Arrival location", old.ArrivalLocation, updated.ArrivalLocation)
	add("Arrival time", old.ArrivalTime, updated.ArrivalTime)
	add("Departure transport", old.DepartureMode, updated.DepartureMode)
	add("Departure location", old.DepartureLocation, updated.DepartureLocation)
	add("Departure time", old.DepartureTime, updated.DepartureTime)
	add("Attending days", strings.Join(old.AttendingDays, ", "), strings.Join(updated.AttendingDays, ", "))
	add("Meals", formatMeals(old.Meals), formatMeals(updated.Meals))
	add("Notes", old.Notes, updated.Notes)
	return changes
}

func formatMeals(meals []signup.Meal) string {
	if len(meals) == 0 {
		return ""
	}
	parts := make([]string, 0, len(meals))
	for _, m := range meals {
		parts = append(parts, fmt.Sprintf("%s %s", m.Date, m.Type))
	}
	return strings.Join(parts, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func buildChangeSummary(event *db.Event, volunteerName string, changes []fieldChange) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Volunteer %s edited their signup for %s (%s).\n", volunteerName, event.Title, event.StartDate)
	b.WriteString("Registration for this event is closed; please review the changes.\n\n")
	if len(changes) == 0 {
		b.WriteString("No visible field changes were detected (the same data may have been resubmitted).\n")
		return b.String()
	}
	for _, c := range changes {
		fmt.Fprintf(&b, "%s:\n  was: %s\n  now: %s\n", c.Field, c.Old, c.New)
	}
	return b.String()
}
