package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cramplan/internal/cli/formatter"
)

func newContentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Fetch reference content for chapters",
	}

	cmd.AddCommand(newContentFetchCmd(app))

	return cmd
}

func newContentFetchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch CHAPTER_ID",
		Short: "Fetch reference text and generate a study summary for a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := app.Content.FetchChapterContent(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Println(formatter.Dim("No reference content found for this chapter."))
				return nil
			}
			fmt.Println("Attached reference content and study summary.")
			return nil
		},
	}
}
