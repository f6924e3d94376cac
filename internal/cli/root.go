package cli

import (
	"github.com/spf13/cobra"

	"cramplan/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Intake      service.IntakeService
	Plans       service.PlanService
	Schedule    service.ScheduleService
	Adaptations service.AdaptationService
	Content     service.ContentService

	// IsInteractive reports whether stdin is attached to a terminal, used
	// to decide when destructive commands may prompt.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "cramplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "cramplan",
		Short: "Exam study planner with adaptive scheduling",
	}

	root.AddCommand(
		newSubjectsCmd(app),
		newScheduleCmd(app),
		newSessionCmd(app),
		newProgressCmd(app),
		newAdaptationsCmd(app),
		newContentCmd(app),
		newResetCmd(app),
	)

	return root
}
