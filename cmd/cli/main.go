package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mountain-ministry/shuttle-signup/internal/config"
	"github.com/mountain-ministry/shuttle-signup/pkg/clients/mailclient"
	"github.com/mountain-ministry/shuttle-signup/pkg/core/dateutil"
	"github.com/mountain-ministry/shuttle-signup/pkg/core/services"
	"github.com/mountain-ministry/shuttle-signup/pkg/core/shuttle"
	"github.com/mountain-ministry/shuttle-signup/pkg/core/signup"
	"github.com/mountain-ministry/shuttle-signup/pkg/db"
	"github.com/mountain-ministry/shuttle-signup/pkg/postgres"
	"github.com/mountain-ministry/shuttle-signup/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg        *config.Config
	oauthCfg   *config.OAuthClientConfig
	mailClient *mailclient.Client
	database   *postgres.DB
	logger     *zap.Logger
	ctx        context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Prayer Mountain shuttle CLI - Manage volunteer signups and shuttle dispatch",
		Long:  `A CLI tool for managing volunteer event signups, shuttle run grouping, driver assignment, and meal headcounts.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(createEventCmd())
	rootCmd.AddCommand(setRegistrationCmd())
	rootCmd.AddCommand(addVolunteerCmd())
	rootCmd.AddCommand(listEventsCmd())
	rootCmd.AddCommand(viewSignupsCmd())
	rootCmd.AddCommand(submitSignupCmd())
	rootCmd.AddCommand(manifestCmd())
	rootCmd.AddCommand(assignDriverCmd())
	rootCmd.AddCommand(checkShuttleCmd())
	rootCmd.AddCommand(mealReportCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(reviewEarlyArrivalCmd())
	rootCmd.AddCommand(upcomingSeriesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, mail client, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	// Initialize logger
	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.logger.Info("Loading configuration")
	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	// Load OAuth client configuration
	app.logger.Info("Loading OAuth client configuration")
	app.oauthCfg, err = config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	app.logger.Debug("OAuth configuration loaded successfully")

	// Initialize mail client
	app.logger.Info("Initializing mail client")
	app.mailClient, err = mailclient.NewClient(app.ctx, app.oauthCfg, app.cfg.GmailSender)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}
	app.logger.Debug("Mail client initialized successfully")

	// Connect to the database and apply pending migrations
	app.logger.Info("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Info("Database initialized successfully")

	return nil
}

// Command definitions

func createEventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "createEvent <event_file>",
		Short: "Create an event from a JSON definition file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read event file: %w", err)
			}
			var event db.Event
			if err := json.Unmarshal(data, &event); err != nil {
				return fmt.Errorf("failed to parse event file: %w", err)
			}
			if event.ID == "" {
				event.ID = uuid.New().String()
			}
			if event.StartDate == "" || event.EndDate == "" || event.Title == "" {
				return fmt.Errorf("event file must set title, startDate, and endDate")
			}

			if err := app.database.InsertEvent(app.ctx, &event); err != nil {
				return err
			}

			fmt.Printf("\n✓ Event created!\n\n")
			fmt.Printf("Event ID: %s\n", event.ID)
			fmt.Printf("Dates:    %s to %s\n\n", event.StartDate, event.EndDate)
			return nil
		},
	}
}

func setRegistrationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setRegistration <event_id> <open|closed>",
		Short: "Open or close registration for an event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, state := args[0], args[1]
			if state != "open" && state != "closed" {
				return fmt.Errorf("state must be open or closed, got %q", state)
			}

			if err := app.database.SetRegistrationOpen(app.ctx, eventID, state == "open"); err != nil {
				return err
			}

			fmt.Printf("\n✓ Registration for event %s is now %s\n\n", eventID, state)
			return nil
		},
	}
}

func addVolunteerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addVolunteer <name>",
		Short: "Register a volunteer account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")
			role, _ := cmd.Flags().GetString("role")
			approved, _ := cmd.Flags().GetBool("approved")

			v := &db.Volunteer{
				ID:       uuid.New().String(),
				Name:     args[0],
				Email:    email,
				Phone:    phone,
				Role:     db.Role(role),
				Approved: approved,
			}
			if err := app.database.InsertVolunteer(app.ctx, v); err != nil {
				return err
			}

			fmt.Printf("\n✓ Volunteer %s registered with ID %s\n\n", v.Name, v.ID)
			return nil
		},
	}

	cmd.Flags().String("email", "", "Contact email address")
	cmd.Flags().String("phone", "", "Contact phone number")
	cmd.Flags().String("role", string(db.RoleVolunteer), "Account role (volunteer, admin, core_admin)")
	cmd.Flags().Bool("approved", false, "Mark the account as approved")

	return cmd
}

func listEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listEvents",
		Short: "List all events with their dates and registration state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.database.GetEvents(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}

			today := time.Now().Format(dateutil.DateLayout)

			fmt.Printf("\nFound %d events:\n\n", len(events))
			for _, e := range events {
				state := "open"
				if signup.EventPast(e.EndDate, today) {
					state = "past"
				} else if !e.RegistrationOpen {
					state = "closed"
				}
				fmt.Printf("- %s  %s to %s  [%s]  %s\n", e.ID, e.StartDate, e.EndDate, state, e.Title)
			}
			fmt.Println()

			return nil
		},
	}
}

func viewSignupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "viewSignups <event_id>",
		Short: "View all signups for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID := args[0]

			signups, err := app.database.GetSignupsForEvent(app.ctx, eventID)
			if err != nil {
				return fmt.Errorf("failed to fetch signups: %w", err)
			}
			volunteers, err := app.database.GetVolunteers(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch volunteers: %w", err)
			}
			names := make(map[string]string, len(volunteers))
			for _, v := range volunteers {
				names[v.ID] = v.Name
			}

			fmt.Printf("\nFound %d signups for event %s:\n\n", len(signups), eventID)
			for _, s := range signups {
				name := names[s.VolunteerID]
				if name == "" {
					name = s.VolunteerID
				}
				fmt.Printf("- %s: %d days, arrives %s", name, len(s.AttendingDays), dateutil.FormatDateShort(s.ArrivalDate))
				if s.ArrivalTime != "" {
					fmt.Printf(" %s", s.ArrivalTime)
				}
				fmt.Printf(", departs %s", dateutil.FormatDateShort(s.DepartureDate))
				if s.DepartureTime != "" {
					fmt.Printf(" %s", s.DepartureTime)
				}
				if s.EarlyArrival != nil {
					fmt.Printf("  [early arrival: %s]", s.EarlyArrival.Status)
				}
				fmt.Println()
			}
			fmt.Println()

			return nil
		},
	}
}

func submitSignupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submitSignup <event_id> <volunteer_id> <draft_file>",
		Short: "Submit or edit a signup from a JSON draft file on a volunteer's behalf",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, volunteerID, draftFile := args[0], args[1], args[2]

			data, err := os.ReadFile(draftFile)
			if err != nil {
				return fmt.Errorf("failed to read draft file: %w", err)
			}
			var draft signup.Draft
			if err := json.Unmarshal(data, &draft); err != nil {
				return fmt.Errorf("failed to parse draft file: %w", err)
			}

			result, err := services.SubmitSignup(
				app.ctx,
				app.database,
				app.database,
				app.database,
				app.mailClient,
				app.logger,
				eventID,
				volunteerID,
				draft,
				time.Now(),
			)
			if err != nil {
				return err
			}

			if result.FieldErrors.HasErrors() {
				fmt.Printf("\nSignup rejected with %d validation errors:\n", len(result.FieldErrors))
				for field, msg := range result.FieldErrors {
					fmt.Printf("  %s: %s\n", field, msg)
				}
				fmt.Println()
				return nil
			}

			fmt.Printf("\n✓ Signup saved!\n\n")
			fmt.Printf("Signup ID:    %s\n", result.Signup.ID)
			fmt.Printf("Attending:    %d days\n", len(result.Signup.AttendingDays))
			fmt.Printf("Arrival:      %s\n", result.Signup.ArrivalDate)
			fmt.Printf("Departure:    %s\n\n", result.Signup.DepartureDate)

			return nil
		},
	}
}

func manifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest <event_id>",
		Short: "Group shuttle requests into runs and print the dispatch list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID := args[0]

			result, err := services.BuildManifest(app.ctx, app.database, app.database, app.database, app.logger, eventID)
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Print(result.Manifest)

			if len(result.Runs) > 0 {
				fmt.Printf("\nRun keys (for assignDriver):\n")
				for _, run := range result.Runs {
					fmt.Printf("  %s\n", run.Key())
				}
				fmt.Println()
			}

			return nil
		},
	}
}

func assignDriverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assignDriver <event_id> <run_key> <driver_id>",
		Short: "Attach a driver to a shuttle run",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, runKey, driverID := args[0], args[1], args[2]

			err := services.AssignDriver(app.ctx, app.database, app.database, app.database, app.logger, eventID, runKey, driverID)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Driver %s assigned to run %s\n\n", driverID, runKey)
			return nil
		},
	}
}

func checkShuttleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkShuttle <event_id> <volunteer_id> <arrival|departure> <location> <HH:MM>",
		Short: "Count how many other volunteers ride within 30 minutes of a candidate time",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, volunteerID := args[0], args[1]
			direction := shuttle.Direction(args[2])
			location := shuttle.Location(args[3])
			candidateTime := args[4]

			if direction != shuttle.DirectionArrival && direction != shuttle.DirectionDeparture {
				return fmt.Errorf("direction must be arrival or departure, got %q", args[2])
			}
			if !location.IsValid() {
				return fmt.Errorf("unknown location %q", args[3])
			}

			count, err := services.CheckShuttleConflict(app.ctx, app.database, app.logger, eventID, volunteerID, direction, location, candidateTime)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d other volunteers within 30 minutes of %s at %s\n\n", count, candidateTime, location.DisplayName())
			return nil
		},
	}
}

func mealReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mealReport <event_id>",
		Short: "Print per-day meal headcounts for the kitchen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID := args[0]

			report, err := services.MealReport(app.ctx, app.database, app.database, app.logger, eventID)
			if err != nil {
				return err
			}

			fmt.Printf("\nMeal headcounts for event %s:\n\n", eventID)
			fmt.Printf("%-12s %10s %8s %8s\n", "Date", "Breakfast", "Lunch", "Dinner")
			for _, day := range report {
				fmt.Printf("%-12s %10d %8d %8d\n", day.Date, day.Breakfast, day.Lunch, day.Dinner)
			}
			fmt.Println()

			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <volunteer_id> [as_of_month]",
		Short: "Show a volunteer's total service count and consecutive-month streak",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			volunteerID := args[0]
			asOfMonth := time.Now().Format(dateutil.MonthLayout)
			if len(args) > 1 {
				asOfMonth = args[1]
			}

			result, err := services.VolunteerStats(app.ctx, app.database, app.database, app.logger, volunteerID, asOfMonth)
			if err != nil {
				return err
			}

			fmt.Printf("\nStats for volunteer %s (as of %s):\n\n", volunteerID, asOfMonth)
			fmt.Printf("Total services:     %d\n", result.TotalCount)
			fmt.Printf("Consecutive months: %d\n\n", result.ConsecutiveMonths)

			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			if from == "" && to == "" {
				seasonStart, seasonEnd := dateutil.SeasonRange(asOfMonth + "-01")
				from = dateutil.MonthOf(seasonStart)
				to = dateutil.MonthOf(seasonEnd)
			}

			counts, err := services.MonthlyStats(app.ctx, app.database, app.database, app.logger, volunteerID, from, to)
			if err != nil {
				return err
			}

			months := make([]string, 0, len(counts))
			for month := range counts {
				months = append(months, month)
			}
			sort.Strings(months)

			fmt.Printf("Monthly breakdown:\n")
			for _, month := range months {
				fmt.Printf("  %s: %d\n", month, counts[month])
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("from", "", "Start month (YYYY-MM) for the monthly breakdown, default start of the current quarter")
	cmd.Flags().String("to", "", "End month (YYYY-MM) for the monthly breakdown, default end of the current quarter")

	return cmd
}

func reviewEarlyArrivalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reviewEarlyArrival <event_id> <volunteer_id> <approve|reject>",
		Short: "Approve or reject a pending early-arrival request",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, volunteerID, decision := args[0], args[1], args[2]

			var approve bool
			var outcome string
			switch decision {
			case "approve":
				approve = true
				outcome = "approved"
			case "reject":
				approve = false
				outcome = "rejected"
			default:
				return fmt.Errorf("decision must be approve or reject, got %q", decision)
			}

			if err := services.ReviewEarlyArrival(app.ctx, app.database, app.database, app.logger, eventID, volunteerID, approve); err != nil {
				return err
			}

			fmt.Printf("\n✓ Early-arrival request %s for volunteer %s\n\n", outcome, volunteerID)
			return nil
		},
	}
}

func upcomingSeriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upcomingSeries [as_of_date]",
		Short: "Preview upcoming occurrence dates for each configured event series",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asOfDate := time.Now().Format(dateutil.DateLayout)
			if len(args) > 0 {
				asOfDate = args[0]
			}
			count, _ := cmd.Flags().GetInt("count")

			upcoming, err := services.UpcomingSeriesDates(app.cfg, app.logger, asOfDate, count)
			if err != nil {
				return err
			}

			fmt.Printf("\nUpcoming series dates from %s:\n\n", asOfDate)
			for _, schedule := range app.cfg.SeriesSchedules {
				fmt.Printf("%s:\n", schedule.Name)
				for _, date := range upcoming[schedule.Name] {
					fmt.Printf("  %s\n", date)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().Int("count", 6, "Number of occurrences to preview per series")

	return cmd
}
