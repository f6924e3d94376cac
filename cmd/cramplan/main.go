package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"cramplan/internal/cli"
	"cramplan/internal/contentlookup"
	"cramplan/internal/db"
	"cramplan/internal/llm"
	"cramplan/internal/planner"
	"cramplan/internal/repository"
	"cramplan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	// Determine DB path: env var or default ~/.cramplan/cramplan.db
	dbPath := os.Getenv("CRAMPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".cramplan", "cramplan.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	subjectRepo := repository.NewSQLiteSubjectRepo(database)
	chapterRepo := repository.NewSQLiteChapterRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	adaptationRepo := repository.NewSQLiteAdaptationRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire the planning oracle; with no API key configured every planning
	// call uses the deterministic fallback.
	llmCfg := llm.LoadConfig()
	llmClient := llm.NewChatClient(llmCfg, llm.NewZapObserver(logger))
	plannerSvc := planner.NewService(llmClient, logger)

	lookup := contentlookup.NewClient(logger)

	app := &cli.App{
		Intake:      service.NewIntakeService(plannerSvc, uow, logger),
		Plans:       service.NewPlanService(chapterRepo, subjectRepo, plannerSvc, uow, logger),
		Schedule:    service.NewScheduleService(sessionRepo, chapterRepo, subjectRepo, adaptationRepo, logger),
		Adaptations: service.NewAdaptationService(sessionRepo, chapterRepo, subjectRepo, plannerSvc, uow, logger),
		Content:     service.NewContentService(chapterRepo, lookup, plannerSvc, uow, logger),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// newLogger builds a production logger writing to stderr so command output
// on stdout stays clean. CRAMPLAN_DEBUG=1 switches to development verbosity.
func newLogger() (*zap.Logger, error) {
	if os.Getenv("CRAMPLAN_DEBUG") == "1" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
