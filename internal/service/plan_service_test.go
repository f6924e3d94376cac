package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cramplan/internal/planner"
	"cramplan/internal/repository"
	"cramplan/internal/testutil"
)

func TestCreatePlan_FailsWithoutChapters(t *testing.T) {
	env := setupEnv(t)
	svc := NewPlanService(env.chapters, env.subjects, fallbackPlanner(), env.uow, nil)

	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	_, _, err := svc.CreatePlan(context.Background(), CreatePlanRequest{
		Name:       "Empty",
		StartDate:  now,
		EndDate:    now.AddDate(0, 0, 7),
		DailyHours: 4.0,
	}, now)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreatePlan_MaterializesFallbackSchedule(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	subj := testutil.NewTestSubject("Physics")
	require.NoError(t, env.subjects.Create(ctx, subj))
	for _, title := range []string{"Kinematics", "Dynamics", "Energy"} {
		require.NoError(t, env.chapters.Create(ctx, testutil.NewTestChapter(subj.ID, title)))
	}

	svc := NewPlanService(env.chapters, env.subjects, fallbackPlanner(), env.uow, nil)

	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	plan, result, err := svc.CreatePlan(ctx, CreatePlanRequest{
		Name:       "Crunch",
		StartDate:  now,
		EndDate:    now.AddDate(0, 0, 13),
		DailyHours: 4.0,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, 3, result.CreatedCount)
	assert.Empty(t, result.DroppedTitles)

	active, err := env.plans.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, active.ID)

	counts, err := env.sessions.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts.Total)
}

func TestCreatePlan_DeactivatesPriorPlan(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	subj := testutil.NewTestSubject("Physics")
	require.NoError(t, env.subjects.Create(ctx, subj))
	require.NoError(t, env.chapters.Create(ctx, testutil.NewTestChapter(subj.ID, "Kinematics")))

	svc := NewPlanService(env.chapters, env.subjects, fallbackPlanner(), env.uow, nil)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	first, _, err := svc.CreatePlan(ctx, CreatePlanRequest{
		Name: "First", StartDate: now, EndDate: now.AddDate(0, 0, 7), DailyHours: 4.0,
	}, now)
	require.NoError(t, err)

	second, _, err := svc.CreatePlan(ctx, CreatePlanRequest{
		Name: "Second", StartDate: now, EndDate: now.AddDate(0, 0, 7), DailyHours: 4.0,
	}, now.Add(time.Hour))
	require.NoError(t, err)

	active, err := env.plans.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	old, err := env.plans.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, old.Active)
}

func TestMaterialize_DropsUnknownChapterTitles(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	subj := testutil.NewTestSubject("Physics")
	require.NoError(t, env.subjects.Create(ctx, subj))
	ch := testutil.NewTestChapter(subj.ID, "Kinematics")
	require.NoError(t, env.chapters.Create(ctx, ch))

	svc := NewPlanService(env.chapters, env.subjects, fallbackPlanner(), env.uow, nil)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	schedule := planner.ScheduleResult{Schedule: []planner.DaySchedule{{
		Date: "2026-09-02",
		Sessions: []planner.SessionSlot{
			{ChapterTitle: "Kinematics", Subject: "Physics", StartTime: "09:00", DurationHours: 2.0},
			{ChapterTitle: "Phantom Chapter", Subject: "Physics", StartTime: "11:00", DurationHours: 1.0},
		},
	}}}

	result, err := svc.Materialize(ctx, schedule, "plan-1", now)
	require.NoError(t, err)

	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, []string{"Phantom Chapter"}, result.DroppedTitles)

	counts, err := env.sessions.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Total, "only the resolvable slot persisted")
}

func TestMaterialize_AtomicOnMidBatchFailure(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	subj := testutil.NewTestSubject("Physics")
	require.NoError(t, env.subjects.Create(ctx, subj))
	require.NoError(t, env.chapters.Create(ctx, testutil.NewTestChapter(subj.ID, "Kinematics")))
	require.NoError(t, env.chapters.Create(ctx, testutil.NewTestChapter(subj.ID, "Dynamics")))

	failing := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 2, Err: fmt.Errorf("disk full")}
	svc := NewPlanService(env.chapters, env.subjects, fallbackPlanner(), failing, nil)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	schedule := planner.ScheduleResult{Schedule: []planner.DaySchedule{{
		Date: "2026-09-02",
		Sessions: []planner.SessionSlot{
			{ChapterTitle: "Kinematics", Subject: "Physics", StartTime: "09:00", DurationHours: 2.0},
			{ChapterTitle: "Dynamics", Subject: "Physics", StartTime: "11:00", DurationHours: 2.0},
		},
	}}}

	_, err := svc.Materialize(ctx, schedule, "plan-1", now)
	require.Error(t, err)

	counts, err := env.sessions.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Total, "no sessions survive a failed batch")
}

func TestResetAll_WipesEverything(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	subj := testutil.NewTestSubject("Physics")
	require.NoError(t, env.subjects.Create(ctx, subj))
	ch := testutil.NewTestChapter(subj.ID, "Kinematics")
	require.NoError(t, env.chapters.Create(ctx, ch))
	sess := testutil.NewTestSession(ch.ID)
	require.NoError(t, env.sessions.Create(ctx, sess))
	require.NoError(t, env.plans.Create(ctx, testutil.NewTestPlan("Plan")))
	require.NoError(t, env.adaptations.Create(ctx, testutil.NewTestAdaptation(sess.ID, "missed_session")))

	svc := NewPlanService(env.chapters, env.subjects, fallbackPlanner(), env.uow, nil)
	require.NoError(t, svc.ResetAll(ctx))

	subjects, err := env.subjects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, subjects)

	counts, err := env.sessions.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Total)

	_, err = env.plans.GetActive(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	records, err := env.adaptations.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
