package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cramplan/internal/cli/formatter"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Record session outcomes",
	}

	cmd.AddCommand(
		newSessionCompleteCmd(app),
		newSessionMissCmd(app),
		newSessionMissedListCmd(app),
	)

	return cmd
}

func newSessionCompleteCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "complete ID",
		Short: "Mark a session as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Adaptations.MarkCompleted(context.Background(), args[0], notes, time.Now().UTC()); err != nil {
				return err
			}
			fmt.Printf("Completed session %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Session notes")

	return cmd
}

func newSessionMissCmd(app *App) *cobra.Command {
	var reason string
	var noAdapt bool

	cmd := &cobra.Command{
		Use:   "miss ID",
		Short: "Mark a session as missed and adapt the schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now().UTC()
			id := args[0]

			if noAdapt {
				if err := app.Adaptations.MarkMissed(ctx, id, reason, now); err != nil {
					return err
				}
				fmt.Printf("Marked session %s as missed.\n", id)
				return nil
			}

			adapted, err := app.Adaptations.HandleMissedSession(ctx, id, reason, now)
			if err != nil {
				return err
			}
			fmt.Printf("Marked session %s as missed.\n", id)
			if adapted {
				fmt.Println(formatter.StyleGreen.Render("Schedule adapted. Run 'cramplan adaptations' to review the change."))
			} else {
				fmt.Println(formatter.StyleYellow.Render("Schedule was not adapted."))
			}
			return nil
		},
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why the session was missed")
	cmd.Flags().BoolVar(&noAdapt, "no-adapt", false, "Only record the miss, skip rescheduling")

	return cmd
}

func newSessionMissedListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "missed",
		Short: "List missed sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			missed, err := app.Schedule.MissedSessions(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatMissed(missed))
			return nil
		},
	}
}
