package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all subjects, chapters, sessions, plans, and adaptations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("refusing to reset without --force in a non-interactive session")
				}
				fmt.Print("This deletes all study data. Type 'yes' to continue: ")
				line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				if strings.TrimSpace(line) != "yes" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := app.Plans.ResetAll(context.Background()); err != nil {
				return err
			}
			fmt.Println("All study data removed.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}
