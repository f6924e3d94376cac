package service

import (
	"context"
	"database/sql"
	"testing"

	"cramplan/internal/db"
	"cramplan/internal/llm"
	"cramplan/internal/planner"
	"cramplan/internal/repository"
	"cramplan/internal/testutil"
)

// disabledLLM is an llm.Client that is never enabled, forcing every planner
// call down the deterministic fallback path.
type disabledLLM struct{}

func (disabledLLM) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	return nil, llm.ErrUnavailable
}

func (disabledLLM) Enabled() bool { return false }

func fallbackPlanner() planner.Service {
	return planner.NewService(disabledLLM{}, nil)
}

type testEnv struct {
	db          *sql.DB
	uow         db.UnitOfWork
	subjects    *repository.SQLiteSubjectRepo
	chapters    *repository.SQLiteChapterRepo
	sessions    *repository.SQLiteSessionRepo
	plans       *repository.SQLitePlanRepo
	adaptations *repository.SQLiteAdaptationRepo
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:          database,
		uow:         testutil.NewTestUoW(database),
		subjects:    repository.NewSQLiteSubjectRepo(database),
		chapters:    repository.NewSQLiteChapterRepo(database),
		sessions:    repository.NewSQLiteSessionRepo(database),
		plans:       repository.NewSQLitePlanRepo(database),
		adaptations: repository.NewSQLiteAdaptationRepo(database),
	}
}
