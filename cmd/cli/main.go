package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"treelot/internal/config"
	"treelot/pkg/core/model"
	"treelot/pkg/core/services"
	"treelot/pkg/core/usecases"
	"treelot/pkg/db"
	"treelot/pkg/metrics"
	"treelot/pkg/postgres"
	"treelot/pkg/utils/logging"
)

// stores bundles the persistence interfaces so the rest of the wiring does
// not care whether they are backed by PostgreSQL or memory.
type stores struct {
	shifts      db.ShiftStore
	assignments db.AssignmentStore
	attendance  db.AttendanceStore
	users       db.UserStore
	households  db.HouseholdStore
	seasons     db.SeasonStore
	templates   db.TemplateStore
}

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	stores   stores
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context

	signup      usecases.ShiftSigner
	attendance  *services.AttendanceService
	schedule    *services.ScheduleService
	leaderboard *services.LeaderboardService

	signUpUC         *usecases.SignUpUseCase
	checkInUC        *usecases.CheckInUseCase
	checkOutUC       *usecases.CheckOutUseCase
	walkInUC         *usecases.WalkInUseCase
	noShowUC         *usecases.NoShowUseCase
	adminUpdateUC    *usecases.AdminUpdateUseCase
	staffingAlertsUC *usecases.StaffingAlertsUseCase
	weekStaffingUC   *usecases.WeekStaffingUseCase
	personalStatsUC  *usecases.PersonalStatsUseCase
	seasonStatsUC    *usecases.SeasonStatsUseCase
	scoutBucksUC     *usecases.ScoutBucksUseCase
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Tree lot CLI - Manage volunteer shifts and attendance",
		Long:  `A CLI tool for managing tree lot volunteer shifts, signups, attendance, and season reporting.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
			if app != nil && app.database != nil {
				app.database.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(signUpCmd())
	rootCmd.AddCommand(cancelAssignmentCmd())
	rootCmd.AddCommand(checkInCmd())
	rootCmd.AddCommand(checkOutCmd())
	rootCmd.AddCommand(addWalkInCmd())
	rootCmd.AddCommand(markNoShowCmd())
	rootCmd.AddCommand(updateAttendanceCmd())
	rootCmd.AddCommand(staffingAlertsCmd())
	rootCmd.AddCommand(weekStaffingCmd())
	rootCmd.AddCommand(generateScheduleCmd())
	rootCmd.AddCommand(publishScheduleCmd())
	rootCmd.AddCommand(leaderboardCmd())
	rootCmd.AddCommand(myStatsCmd())
	rootCmd.AddCommand(seasonStatsCmd())
	rootCmd.AddCommand(scoutBucksCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, stores, services, and use cases
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.logger.Info("Loading configuration")
	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	if app.cfg.DatabaseURL != "" {
		app.logger.Info("Connecting to database")
		app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := app.database.RunMigrations(app.ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		app.stores = stores{
			shifts:      app.database,
			assignments: app.database,
			attendance:  app.database,
			users:       app.database,
			households:  app.database,
			seasons:     app.database,
			templates:   app.database,
		}
		app.logger.Info("Database initialized successfully")
	} else {
		app.logger.Warn("No databaseURL configured, using in-memory stores")
		app.stores = stores{
			shifts:      db.NewMemoryShiftStore(),
			assignments: db.NewMemoryAssignmentStore(),
			attendance:  db.NewMemoryAttendanceStore(),
			users:       db.NewMemoryUserStore(),
			households:  db.NewMemoryHouseholdStore(),
			seasons:     db.NewMemorySeasonStore(),
			templates:   db.NewMemoryTemplateStore(),
		}
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	// Postgres runs the signup/cancel writes in one transaction; the
	// in-memory stores fall back to the compensation path.
	if app.database != nil {
		app.signup = services.NewTxSignupService(app.database, m, app.logger)
	} else {
		app.signup = services.NewSignupService(app.stores.shifts, app.stores.assignments, m, app.logger)
	}
	app.attendance = services.NewAttendanceService(app.stores.assignments, app.stores.attendance, m, app.logger)
	app.schedule = services.NewScheduleService(app.stores.shifts, app.stores.templates, app.stores.seasons, app.cfg.ScheduleOverrides, app.logger)
	app.leaderboard = services.NewLeaderboardService(app.stores.users, app.stores.attendance, app.stores.seasons, app.logger)

	app.signUpUC = usecases.NewSignUpUseCase(app.stores.shifts, app.stores.assignments, app.stores.users, app.signup, app.logger)
	app.checkInUC = usecases.NewCheckInUseCase(app.stores.assignments, app.attendance, app.logger)
	app.checkOutUC = usecases.NewCheckOutUseCase(app.stores.assignments, app.attendance, app.logger)
	app.walkInUC = usecases.NewWalkInUseCase(app.stores.shifts, app.stores.assignments, app.stores.attendance, app.stores.users, m, app.logger)
	app.noShowUC = usecases.NewNoShowUseCase(app.stores.assignments, app.stores.attendance, app.stores.users, m, app.logger)
	app.adminUpdateUC = usecases.NewAdminUpdateUseCase(app.stores.attendance, app.stores.users, app.logger)
	app.staffingAlertsUC = usecases.NewStaffingAlertsUseCase(app.stores.shifts, app.stores.users, app.cfg.AlertLookaheadDays, app.logger)
	app.weekStaffingUC = usecases.NewWeekStaffingUseCase(app.stores.shifts, app.stores.users, app.logger)
	app.personalStatsUC = usecases.NewPersonalStatsUseCase(app.stores.attendance, app.stores.seasons, app.leaderboard, app.logger)
	app.seasonStatsUC = usecases.NewSeasonStatsUseCase(app.stores.shifts, app.stores.attendance, app.stores.users, app.stores.households, app.stores.seasons, app.leaderboard, app.logger)
	app.scoutBucksUC = usecases.NewScoutBucksUseCase(app.stores.users, app.stores.attendance, app.stores.seasons, app.cfg.ScoutBucks, app.logger)

	return nil
}

const dateLayout = "2006-01-02"

// Command definitions

func signUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signUp <shift_id> <user_id> <role>",
		Short: "Sign a volunteer up for a shift",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, _ := cmd.Flags().GetString("notes")

			shiftID, err := model.ParseShiftID(args[0])
			if err != nil {
				return err
			}
			userID, err := model.ParseUserID(args[1])
			if err != nil {
				return err
			}

			assignmentID, err := app.signUpUC.SignUpForShift(app.ctx, usecases.SignUpForShiftRequest{
				ShiftID: shiftID,
				UserID:  userID,
				Role:    model.RoleType(args[2]),
				Notes:   notes,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Signed up successfully!\n\n")
			fmt.Printf("Assignment ID: %s\n\n", assignmentID)
			return nil
		},
	}

	cmd.Flags().String("notes", "", "Notes to attach to the assignment")
	return cmd
}

func cancelAssignmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancelAssignment <assignment_id> <requester_id>",
		Short: "Cancel a shift assignment and release the slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, _ := cmd.Flags().GetString("reason")

			assignmentID, err := model.ParseAssignmentID(args[0])
			if err != nil {
				return err
			}
			requesterID, err := model.ParseUserID(args[1])
			if err != nil {
				return err
			}

			err = app.signUpUC.CancelAssignment(app.ctx, usecases.CancelAssignmentRequest{
				AssignmentID: assignmentID,
				RequesterID:  requesterID,
				Reason:       reason,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Assignment %s cancelled.\n\n", args[0])
			return nil
		},
	}

	cmd.Flags().String("reason", "", "Reason for the cancellation")
	return cmd
}

func checkInCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkIn <assignment_id> <user_id>",
		Short: "Check a volunteer in to their shift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qrPayload, _ := cmd.Flags().GetString("qr")

			assignmentID, err := model.ParseAssignmentID(args[0])
			if err != nil {
				return err
			}
			userID, err := model.ParseUserID(args[1])
			if err != nil {
				return err
			}

			result, err := app.checkInUC.CheckIn(app.ctx, usecases.SelfCheckInRequest{
				AssignmentID: assignmentID,
				UserID:       userID,
				QRPayload:    qrPayload,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Checked in at %s\n", result.CheckInTime.Format(time.Kitchen))
			fmt.Printf("Record ID: %s\n\n", result.RecordID)
			return nil
		},
	}

	cmd.Flags().String("qr", "", "QR code payload, if scanned")
	return cmd
}

func checkOutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkOut <assignment_id> <user_id>",
		Short: "Check a volunteer out of their shift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, _ := cmd.Flags().GetString("notes")

			assignmentID, err := model.ParseAssignmentID(args[0])
			if err != nil {
				return err
			}
			userID, err := model.ParseUserID(args[1])
			if err != nil {
				return err
			}

			result, err := app.checkOutUC.CheckOut(app.ctx, usecases.SelfCheckOutRequest{
				AssignmentID: assignmentID,
				UserID:       userID,
				Notes:        notes,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Checked out at %s\n", result.CheckOutTime.Format(time.Kitchen))
			fmt.Printf("Hours worked: %.2f\n\n", result.HoursWorked)
			return nil
		},
	}

	cmd.Flags().String("notes", "", "Notes to append to the attendance record")
	return cmd
}

func addWalkInCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "addWalkIn <shift_id> <requester_id> <subject_id> <role>",
		Short: "Add a walk-in volunteer to a shift that has started",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftID, err := model.ParseShiftID(args[0])
			if err != nil {
				return err
			}
			requesterID, err := model.ParseUserID(args[1])
			if err != nil {
				return err
			}
			subjectID, err := model.ParseUserID(args[2])
			if err != nil {
				return err
			}

			result, err := app.walkInUC.AddWalkIn(app.ctx, usecases.AddWalkInRequest{
				ShiftID:     shiftID,
				RequesterID: requesterID,
				SubjectID:   subjectID,
				Role:        model.RoleType(args[3]),
			})
			if err != nil {
				return err
			}

			if !result.Success {
				fmt.Printf("\n✗ Walk-in rejected: %s\n\n", result.Message)
				return nil
			}

			fmt.Printf("\n✓ Walk-in added and checked in!\n\n")
			fmt.Printf("Assignment ID: %s\n", result.AssignmentID)
			fmt.Printf("Record ID:     %s\n\n", result.RecordID)
			return nil
		},
	}
}

func markNoShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markNoShow <assignment_id> <requester_id>",
		Short: "Mark an assignment as a no-show",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, _ := cmd.Flags().GetString("reason")

			assignmentID, err := model.ParseAssignmentID(args[0])
			if err != nil {
				return err
			}
			requesterID, err := model.ParseUserID(args[1])
			if err != nil {
				return err
			}

			err = app.noShowUC.MarkNoShow(app.ctx, usecases.MarkNoShowRequest{
				AssignmentID: assignmentID,
				RequesterID:  requesterID,
				Reason:       reason,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Assignment %s marked as no-show.\n\n", args[0])
			return nil
		},
	}

	cmd.Flags().String("reason", "", "Reason for the no-show")
	return cmd
}

func updateAttendanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "updateAttendance <record_id> <requester_id>",
		Short: "Apply a committee override to an attendance record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID, err := model.ParseAttendanceRecordID(args[0])
			if err != nil {
				return err
			}
			requesterID, err := model.ParseUserID(args[1])
			if err != nil {
				return err
			}

			req := usecases.UpdateAttendanceRecordRequest{
				RecordID:    recordID,
				RequesterID: requesterID,
			}

			if v, _ := cmd.Flags().GetString("check-in"); v != "" {
				parsed, err := time.Parse(time.RFC3339, v)
				if err != nil {
					return fmt.Errorf("check-in must be RFC3339: %w", err)
				}
				req.CheckInTime = &parsed
			}
			if v, _ := cmd.Flags().GetString("check-out"); v != "" {
				parsed, err := time.Parse(time.RFC3339, v)
				if err != nil {
					return fmt.Errorf("check-out must be RFC3339: %w", err)
				}
				req.CheckOutTime = &parsed
			}
			req.ClearCheckOut, _ = cmd.Flags().GetBool("clear-check-out")
			if v, _ := cmd.Flags().GetString("status"); v != "" {
				status := model.AttendanceStatus(v)
				if !status.IsValid() {
					return fmt.Errorf("unknown attendance status %q", v)
				}
				req.Status = &status
			}

			record, err := app.adminUpdateUC.UpdateAttendanceRecord(app.ctx, req)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Record %s updated (status %s).\n", record.ID, record.Status)
			if record.HoursWorked != nil {
				fmt.Printf("Hours worked: %.2f\n", *record.HoursWorked)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().String("check-in", "", "Override check-in time (RFC3339)")
	cmd.Flags().String("check-out", "", "Override check-out time (RFC3339)")
	cmd.Flags().Bool("clear-check-out", false, "Clear the check-out time and hours")
	cmd.Flags().String("status", "", "Override the record status")
	return cmd
}

func staffingAlertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "staffingAlerts <requester_id>",
		Short: "Show understaffed shifts over the configured lookahead window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requesterID, err := model.ParseUserID(args[0])
			if err != nil {
				return err
			}

			result, err := app.staffingAlertsUC.GetStaffingAlerts(app.ctx, requesterID)
			if err != nil {
				return err
			}

			if len(result.Critical) == 0 && len(result.Low) == 0 {
				fmt.Println("\n✓ All upcoming shifts are adequately staffed.")
				return nil
			}

			if len(result.Critical) > 0 {
				fmt.Printf("\n🚨 Critical (%d):\n\n", len(result.Critical))
				printAlerts(result.Critical)
			}
			if len(result.Low) > 0 {
				fmt.Printf("\n⚠️  Low (%d):\n\n", len(result.Low))
				printAlerts(result.Low)
			}
			return nil
		},
	}
}

func printAlerts(alerts []usecases.StaffingAlert) {
	for _, a := range alerts {
		label := a.Label
		if label == "" {
			label = a.ShiftID.String()
		}
		fmt.Printf("  %s  %s  (in %d days)\n", a.Date.Format(dateLayout), label, a.DaysUntilShift)
		fmt.Printf("    Need %d scouts, %d parents (%d open slots)\n",
			a.ScoutShortfall, a.ParentShortfall, a.TotalOpenSlots)
	}
}

func weekStaffingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekStaffing <requester_id> [week_of]",
		Short: "Show the staffing overview for a week (defaults to this week)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			requesterID, err := model.ParseUserID(args[0])
			if err != nil {
				return err
			}

			weekOf := time.Now()
			if len(args) > 1 {
				parsed, err := time.Parse(dateLayout, args[1])
				if err != nil {
					return fmt.Errorf("week_of must be YYYY-MM-DD: %w", err)
				}
				weekOf = parsed
			}

			result, err := app.weekStaffingUC.GetWeekStaffing(app.ctx, requesterID, weekOf)
			if err != nil {
				return err
			}

			fmt.Printf("\nWeek of %s — %d shifts (%d critical, %d low, %d full)\n\n",
				result.WeekStart.Format(dateLayout),
				result.TotalShifts, result.CriticalCount, result.LowCount, result.FullCount)

			for _, day := range result.Days {
				fmt.Printf("%s (%s):\n", day.Date.Format(dateLayout), day.Date.Format("Monday"))
				if len(day.Shifts) == 0 {
					fmt.Println("  no shifts")
					continue
				}
				for _, s := range day.Shifts {
					label := s.Label
					if label == "" {
						label = s.ShiftID.String()
					}
					fmt.Printf("  %s-%s  %-20s  %s\n",
						s.StartTime.Format(time.Kitchen), s.EndTime.Format(time.Kitchen),
						label, s.Level)
				}
			}
			fmt.Println()
			return nil
		},
	}
}

func generateScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule <season_id> <start_date> <end_date>",
		Short: "Generate draft shifts from templates over a date range",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			seasonID, err := model.ParseSeasonID(args[0])
			if err != nil {
				return err
			}
			start, err := time.Parse(dateLayout, args[1])
			if err != nil {
				return fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
			}
			end, err := time.Parse(dateLayout, args[2])
			if err != nil {
				return fmt.Errorf("end_date must be YYYY-MM-DD: %w", err)
			}

			templateArgs, _ := cmd.Flags().GetStringSlice("templates")
			dayArgs, _ := cmd.Flags().GetStringSlice("days")
			excludeArgs, _ := cmd.Flags().GetStringSlice("exclude")

			templateIDs := make([]model.TemplateID, len(templateArgs))
			for i, t := range templateArgs {
				templateIDs[i], err = model.ParseTemplateID(t)
				if err != nil {
					return err
				}
			}

			days, err := parseWeekdays(dayArgs)
			if err != nil {
				return err
			}

			var excluded []time.Time
			for _, e := range excludeArgs {
				d, err := time.Parse(dateLayout, e)
				if err != nil {
					return fmt.Errorf("excluded date must be YYYY-MM-DD: %w", err)
				}
				excluded = append(excluded, d)
			}

			shiftIDs, err := app.schedule.GenerateSchedule(app.ctx, services.GenerateScheduleRequest{
				SeasonID:      seasonID,
				StartDate:     start,
				EndDate:       end,
				TemplateIDs:   templateIDs,
				DaysOfWeek:    days,
				ExcludedDates: excluded,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Generated %d draft shifts.\n\n", len(shiftIDs))
			return nil
		},
	}

	cmd.Flags().StringSlice("templates", nil, "Template IDs to expand (required)")
	cmd.Flags().StringSlice("days", nil, "Days of week to generate, e.g. Sat,Sun (required)")
	cmd.Flags().StringSlice("exclude", nil, "Dates to skip, YYYY-MM-DD")
	cmd.MarkFlagRequired("templates")
	cmd.MarkFlagRequired("days")
	return cmd
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, name := range names {
		day, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown day of week %q", name)
		}
		days = append(days, day)
	}
	return days, nil
}

func publishScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publishSchedule <season_id>",
		Short: "Publish a season's draft shifts and activate the season",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seasonID, err := model.ParseSeasonID(args[0])
			if err != nil {
				return err
			}

			shifts, err := app.stores.shifts.GetShiftsForSeason(app.ctx, seasonID)
			if err != nil {
				return err
			}
			var shiftIDs []model.ShiftID
			for _, s := range shifts {
				if s.Status == model.ShiftDraft {
					shiftIDs = append(shiftIDs, s.ID)
				}
			}

			if err := app.schedule.PublishSchedule(app.ctx, seasonID, shiftIDs); err != nil {
				return err
			}

			fmt.Printf("\n✓ Season %s published (%d shifts).\n\n", args[0], len(shiftIDs))
			return nil
		},
	}
}

func leaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the volunteer hours leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seasonArg, _ := cmd.Flags().GetString("season")
			var seasonID *model.SeasonID
			if seasonArg != "" {
				id, err := model.ParseSeasonID(seasonArg)
				if err != nil {
					return err
				}
				seasonID = &id
			}

			entries, err := app.leaderboard.GetLeaderboard(app.ctx, seasonID)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("\nNo volunteer activity yet.")
				return nil
			}

			fmt.Printf("\n🏆 Leaderboard (%d volunteers):\n\n", len(entries))
			fmt.Printf("%4s  %-25s  %-10s  %8s  %7s\n", "Rank", "Name", "Role", "Hours", "Shifts")
			for _, e := range entries {
				fmt.Printf("%4d  %-25s  %-10s  %8.1f  %7d\n",
					e.Rank, e.Name, e.Role, e.TotalHours, e.CompletedShifts)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().String("season", "", "Limit to one season's window")
	return cmd
}

func myStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "myStats <user_id>",
		Short: "Show a volunteer's personal statistics and badges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := model.ParseUserID(args[0])
			if err != nil {
				return err
			}

			stats, err := app.personalStatsUC.GetPersonalStats(app.ctx, userID)
			if err != nil {
				return err
			}

			fmt.Printf("\nStatistics for %s:\n\n", stats.UserID)
			fmt.Printf("All time: %.1f hours over %d shifts (%d no-shows)\n",
				stats.AllTime.TotalHours, stats.AllTime.CompletedShifts, stats.AllTime.NoShows)
			if stats.AllTime.Rank > 0 {
				fmt.Printf("Rank: #%d\n", stats.AllTime.Rank)
			}
			if stats.SeasonStats != nil {
				fmt.Printf("This season: %.1f hours over %d shifts\n",
					stats.SeasonStats.TotalHours, stats.SeasonStats.CompletedShifts)
			}
			if len(stats.Badges) > 0 {
				fmt.Printf("\nBadges: %s\n", strings.Join(stats.Badges, ", "))
			}
			if len(stats.Recent) > 0 {
				fmt.Printf("\nRecent shifts:\n")
				for _, r := range stats.Recent {
					when := "—"
					if r.CheckInTime != nil {
						when = r.CheckInTime.Format(dateLayout)
					}
					hours := 0.0
					if r.HoursWorked != nil {
						hours = *r.HoursWorked
					}
					fmt.Printf("  %s  %-12s  %.1f hours\n", when, r.Status, hours)
				}
			}
			fmt.Println()
			return nil
		},
	}
}

func seasonStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seasonStats <requester_id> <season_id>",
		Short: "Show season-wide staffing and attendance statistics",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			requesterID, err := model.ParseUserID(args[0])
			if err != nil {
				return err
			}
			seasonID, err := model.ParseSeasonID(args[1])
			if err != nil {
				return err
			}

			stats, err := app.seasonStatsUC.GetSeasonStatistics(app.ctx, requesterID, seasonID)
			if err != nil {
				return err
			}

			fmt.Printf("\n📊 %s\n\n", stats.SeasonName)
			fmt.Printf("Shifts:          %d (%d fully staffed, %.0f%%)\n",
				stats.TotalShifts, stats.FullyStaffedShifts, stats.ShiftFillRate*100)
			fmt.Printf("Slot fill rate:  %.0f%%\n", stats.SlotFillRate*100)
			fmt.Printf("Total hours:     %.1f\n", stats.TotalHours)
			fmt.Printf("Volunteers:      %d (%d households)\n", stats.ActiveVolunteers, stats.ActiveHouseholds)
			fmt.Printf("No-shows:        %d\n", stats.NoShows)

			if len(stats.TopVolunteers) > 0 {
				fmt.Printf("\nTop volunteers:\n")
				for _, e := range stats.TopVolunteers {
					fmt.Printf("  %d. %-25s  %.1f hours\n", e.Rank, e.Name, e.TotalHours)
				}
			}
			fmt.Println()
			return nil
		},
	}
}

func scoutBucksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scoutBucks <requester_id>",
		Short: "Generate the scout-bucks report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requesterID, err := model.ParseUserID(args[0])
			if err != nil {
				return err
			}
			seasonArg, _ := cmd.Flags().GetString("season")
			var seasonID *model.SeasonID
			if seasonArg != "" {
				id, err := model.ParseSeasonID(seasonArg)
				if err != nil {
					return err
				}
				seasonID = &id
			}

			rows, err := app.scoutBucksUC.GenerateScoutBucksReport(app.ctx, requesterID, seasonID)
			if err != nil {
				return err
			}

			if len(rows) == 0 {
				fmt.Println("\nNo scouts with recorded hours.")
				return nil
			}

			fmt.Printf("\n💵 Scout Bucks (%d scouts):\n\n", len(rows))
			fmt.Printf("%-25s  %8s  %8s  %s\n", "Name", "Hours", "Bucks", "Eligible")
			for _, row := range rows {
				eligible := "yes"
				if !row.Eligible {
					eligible = "no"
				}
				fmt.Printf("%-25s  %8.1f  %8.2f  %s\n", row.Name, row.Hours, row.Bucks, eligible)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().String("season", "", "Limit to one season's window")
	return cmd
}
