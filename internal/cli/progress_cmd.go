package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cramplan/internal/cli/formatter"
)

const dailySeriesDays = 14

func newProgressCmd(app *App) *cobra.Command {
	var subjectsOnly bool

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show study progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now().UTC()

			if subjectsOnly {
				subjects, err := app.Schedule.SubjectProgress(ctx)
				if err != nil {
					return err
				}
				fmt.Print(formatter.FormatSubjectProgress(subjects))
				return nil
			}

			report, err := app.Schedule.Progress(ctx, now)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatProgress(report))
			fmt.Println()

			subjects, err := app.Schedule.SubjectProgress(ctx)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatSubjectProgress(subjects))

			daily, err := app.Schedule.DailyCompletions(ctx, now, dailySeriesDays)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatDailyCompletions(daily))
			return nil
		},
	}

	cmd.Flags().BoolVar(&subjectsOnly, "subjects", false, "Show only the per-subject rollup")

	return cmd
}
