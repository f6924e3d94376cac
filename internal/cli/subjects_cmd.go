package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cramplan/internal/cli/formatter"
	"cramplan/internal/domain"
	"cramplan/internal/service"
)

func newSubjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "Manage exam subjects",
	}

	cmd.AddCommand(newSubjectsAddCmd(app))

	return cmd
}

func newSubjectsAddCmd(app *App) *cobra.Command {
	var specs []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add subjects and break them into chapters",
		Long: `Add one or more subjects. Each --subject takes the form
NAME:CHAPTERS:DIFFICULTY:EXAM_DATE, for example:

  cramplan subjects add --subject "Physics:5:hard:2026-09-20"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(specs) == 0 {
				return fmt.Errorf("at least one --subject is required")
			}

			inputs := make([]service.SubjectIntake, 0, len(specs))
			for _, spec := range specs {
				in, err := parseSubjectSpec(spec)
				if err != nil {
					return err
				}
				inputs = append(inputs, in)
			}

			result, err := app.Intake.CreateSubjects(context.Background(), inputs, time.Now().UTC())
			if err != nil {
				return err
			}

			for _, subj := range result.Subjects {
				fmt.Printf("Added %s (exam %s, %s)\n",
					formatter.Bold(subj.Name),
					subj.ExamDate.Format("2006-01-02"),
					formatter.DifficultyBadge(string(subj.Difficulty)))
			}
			fmt.Printf("Created %d chapters across %d subjects.\n", result.Chapters, len(result.Subjects))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&specs, "subject", nil, "Subject as NAME:CHAPTERS:DIFFICULTY:EXAM_DATE (repeatable)")

	return cmd
}

// parseSubjectSpec parses NAME:CHAPTERS:DIFFICULTY:EXAM_DATE.
func parseSubjectSpec(spec string) (service.SubjectIntake, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 4 {
		return service.SubjectIntake{}, fmt.Errorf("invalid subject %q: want NAME:CHAPTERS:DIFFICULTY:EXAM_DATE", spec)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return service.SubjectIntake{}, fmt.Errorf("invalid subject %q: empty name", spec)
	}

	chapters, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || chapters <= 0 {
		return service.SubjectIntake{}, fmt.Errorf("invalid subject %q: chapter count must be a positive integer", spec)
	}

	examDate, err := time.Parse("2006-01-02", strings.TrimSpace(parts[3]))
	if err != nil {
		return service.SubjectIntake{}, fmt.Errorf("invalid subject %q: exam date must be YYYY-MM-DD", spec)
	}

	return service.SubjectIntake{
		Name:          name,
		TotalChapters: chapters,
		Difficulty:    domain.ParseDifficulty(strings.ToLower(strings.TrimSpace(parts[2]))),
		ExamDate:      examDate,
	}, nil
}
