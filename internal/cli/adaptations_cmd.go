package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cramplan/internal/cli/formatter"
)

func newAdaptationsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "adaptations",
		Short: "Show schedule adaptation history",
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := app.Schedule.AdaptationsHistory(context.Background(), limit)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatAdaptations(views))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of records to show")

	return cmd
}
