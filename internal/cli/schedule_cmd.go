package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cramplan/internal/cli/formatter"
	"cramplan/internal/service"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Create and inspect the study schedule",
	}

	cmd.AddCommand(
		newScheduleCreateCmd(app),
		newScheduleShowCmd(app),
	)

	return cmd
}

func newScheduleCreateCmd(app *App) *cobra.Command {
	var name, description, startStr, endStr string
	var dailyHours float64
	var preferredTimes []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a study plan and schedule sessions for all chapters",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()

			start := now
			if startStr != "" {
				parsed, err := time.Parse("2006-01-02", startStr)
				if err != nil {
					return fmt.Errorf("invalid --start %q: want YYYY-MM-DD", startStr)
				}
				start = parsed
			}

			end, err := time.Parse("2006-01-02", endStr)
			if err != nil {
				return fmt.Errorf("invalid --end %q: want YYYY-MM-DD", endStr)
			}
			if end.Before(start) {
				return fmt.Errorf("--end must not be before --start")
			}

			plan, result, err := app.Plans.CreatePlan(context.Background(), service.CreatePlanRequest{
				Name:           name,
				Description:    description,
				StartDate:      start,
				EndDate:        end,
				DailyHours:     dailyHours,
				PreferredTimes: preferredTimes,
			}, now)
			if err != nil {
				return err
			}

			fmt.Printf("Created plan %s covering %d days.\n", formatter.Bold(plan.Name), result.ScheduledDays)
			fmt.Printf("Scheduled %d sessions.\n", result.CreatedCount)
			for _, title := range result.DroppedTitles {
				fmt.Println(formatter.StyleYellow.Render(
					fmt.Sprintf("  WARNING: no chapter matched %q, slot dropped", title)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Study Plan", "Plan name")
	cmd.Flags().StringVar(&description, "description", "", "Plan description")
	cmd.Flags().StringVar(&startStr, "start", "", "Start date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&endStr, "end", "", "End date YYYY-MM-DD")
	cmd.Flags().Float64Var(&dailyHours, "daily-hours", 4.0, "Study hours per day")
	cmd.Flags().StringSliceVar(&preferredTimes, "preferred-times", nil, "Preferred slots like 09:00-12:00 (repeatable)")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newScheduleShowCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show upcoming sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			sessions, err := app.Schedule.CurrentSchedule(context.Background(), now, days)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatSchedule(sessions, now))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days ahead to show")

	return cmd
}
