package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
)

// NewCalendarCmd creates the calendar configuration command with list and
// set subcommands.
func NewCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Manage calendar sync configuration",
		Long:  "List or update the target calendar, time zone, and import window. Stored in database.",
	}
	cmd.AddCommand(newCalendarListCmd())
	cmd.AddCommand(newCalendarSetCmd())
	return cmd
}

func newCalendarListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List current calendar configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			repo := store.NewCalendarConfigRepository(db)
			c, err := repo.Get(context.Background())
			if err != nil {
				return fmt.Errorf("get calendar config: %w", err)
			}
			if c == nil {
				fmt.Println("No calendar configuration in database. Use 'calendar set' to add one.")
				return nil
			}
			fmt.Println("Calendar configuration:")
			fmt.Printf("  Target calendar:    %s\n", c.TargetCalendarID)
			fmt.Printf("  Time zone:          %s\n", c.TimeZone)
			fmt.Printf("  Import window days: %d\n", c.ImportWindowDays)
			return nil
		},
	}
}

func newCalendarSetCmd() *cobra.Command {
	var calendarID, timeZone string
	var windowDays int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set calendar configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if calendarID == "" {
				return fmt.Errorf("--calendar-id is required")
			}
			if windowDays <= 0 {
				windowDays = models.DefaultImportWindowDays
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			repo := store.NewCalendarConfigRepository(db)
			c := &models.CalendarConfig{
				TargetCalendarID: calendarID,
				TimeZone:         timeZone,
				ImportWindowDays: windowDays,
			}
			if err := repo.Set(context.Background(), c); err != nil {
				return fmt.Errorf("set calendar config: %w", err)
			}
			fmt.Println("Calendar configuration updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&calendarID, "calendar-id", "", "Target calendar id (required, e.g. 'primary')")
	cmd.Flags().StringVar(&timeZone, "time-zone", "UTC", "IANA time zone for event times")
	cmd.Flags().IntVar(&windowDays, "window-days", models.DefaultImportWindowDays, "Forward-looking import window in days")

	return cmd
}
