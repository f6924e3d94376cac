package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cramplan/internal/domain"
	"cramplan/internal/planner"
	"cramplan/internal/repository"
	"cramplan/internal/testutil"
)

func newAdaptationSvc(env *testEnv) AdaptationService {
	return NewAdaptationService(env.sessions, env.chapters, env.subjects, fallbackPlanner(), env.uow, nil)
}

func seedSession(t *testing.T, env *testEnv, at time.Time) (*domain.Subject, *domain.Chapter, *domain.StudySession) {
	t.Helper()
	ctx := context.Background()
	subj := testutil.NewTestSubject("Physics")
	require.NoError(t, env.subjects.Create(ctx, subj))
	ch := testutil.NewTestChapter(subj.ID, "Kinematics")
	require.NoError(t, env.chapters.Create(ctx, ch))
	sess := testutil.NewTestSession(ch.ID, testutil.WithScheduledAt(at), testutil.WithDurationHours(2.0))
	require.NoError(t, env.sessions.Create(ctx, sess))
	return subj, ch, sess
}

func TestMarkCompleted_CompletesChapterWhenLastSession(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC)

	_, ch, sess := seedSession(t, env, now.Add(-2*time.Hour))
	svc := newAdaptationSvc(env)

	require.NoError(t, svc.MarkCompleted(ctx, sess.ID, "went well", now))

	updated, err := env.sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, updated.Status)
	assert.Equal(t, "went well", updated.Notes)
	require.NotNil(t, updated.ActualEnd)
	assert.True(t, updated.ActualEnd.Equal(now))
	require.NotNil(t, updated.ActualStart)
	assert.True(t, updated.ActualStart.Equal(now.Add(-2*time.Hour)), "actual start derived from duration")

	chapter, err := env.chapters.GetByID(ctx, ch.ID)
	require.NoError(t, err)
	assert.True(t, chapter.Completed, "chapter completes with its last session")
}

func TestMarkCompleted_ChapterStaysOpenWithRemainingSessions(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC)

	_, ch, sess := seedSession(t, env, now)
	other := testutil.NewTestSession(ch.ID, testutil.WithScheduledAt(now.AddDate(0, 0, 1)))
	require.NoError(t, env.sessions.Create(ctx, other))

	svc := newAdaptationSvc(env)
	require.NoError(t, svc.MarkCompleted(ctx, sess.ID, "", now))

	chapter, err := env.chapters.GetByID(ctx, ch.ID)
	require.NoError(t, err)
	assert.False(t, chapter.Completed)
}

func TestMarkMissed_RecordsReason(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC)

	_, _, sess := seedSession(t, env, now)
	svc := newAdaptationSvc(env)

	require.NoError(t, svc.MarkMissed(ctx, sess.ID, "felt sick", now))

	updated, err := env.sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionMissed, updated.Status)
	assert.Equal(t, "felt sick", updated.MissReason())
}

func TestMarkMissed_EmptyReasonDefaults(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC)

	_, _, sess := seedSession(t, env, now)
	svc := newAdaptationSvc(env)

	require.NoError(t, svc.MarkMissed(ctx, sess.ID, "", now))

	updated, err := env.sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Not specified", updated.MissReason())
}

func TestMarkMissed_RemarkingIsIdempotent(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC)

	_, _, sess := seedSession(t, env, now)
	svc := newAdaptationSvc(env)

	require.NoError(t, svc.MarkMissed(ctx, sess.ID, "felt sick", now))
	require.NoError(t, svc.MarkMissed(ctx, sess.ID, "overslept", now.Add(time.Hour)))

	updated, err := env.sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionMissed, updated.Status)
	assert.Equal(t, domain.MissedNotePrefix+"overslept", updated.Notes, "note is replaced, not stacked")
	assert.Equal(t, "overslept", updated.MissReason())

	n, err := env.adaptations.CountBySession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "marking alone never writes audit rows")
}

func TestMarkMissed_UnknownSession(t *testing.T) {
	env := setupEnv(t)
	svc := newAdaptationSvc(env)

	err := svc.MarkMissed(context.Background(), "no-such-id", "x", time.Now())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApplyAdaptation_CreatesAuditAndReplacementSession(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC)

	_, ch, sess := seedSession(t, env, now.AddDate(0, 0, -1))
	require.NoError(t, env.sessions.Update(ctx, markMissedCopy(sess, now)))

	svc := newAdaptationSvc(env)
	result := planner.AdaptationResult{
		AdaptationPlan: planner.AdaptationPlan{
			RescheduleMissed: &planner.RescheduleMissed{
				NewDate:            "2026-09-05",
				NewTime:            "14:00",
				DurationAdjustment: 0.5,
			},
		},
		Reasoning: "more runway after the weekend",
	}

	require.NoError(t, svc.ApplyAdaptation(ctx, result, sess.ID, "missed_session: sick", now))

	// The audit record is persisted.
	records, err := env.adaptations.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, sess.ID, records[0].Adaptation.OriginalSessionID)
	assert.Equal(t, "missed_session: sick", records[0].Adaptation.Reason)
	assert.Contains(t, records[0].Adaptation.ChangesJSON, "2026-09-05")

	// The original session stays missed; a replacement carries the work.
	original, err := env.sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionMissed, original.Status)

	expectedAt := time.Date(2026, 9, 5, 14, 0, 0, 0, time.UTC)
	upcoming, err := env.sessions.ListUpcoming(ctx, now, now.AddDate(0, 0, 14))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	replacement := upcoming[0].Session
	assert.Equal(t, ch.ID, replacement.ChapterID)
	assert.Equal(t, domain.SessionRescheduled, replacement.Status)
	assert.True(t, replacement.ScheduledAt.Equal(expectedAt))
	assert.Equal(t, 2.5, replacement.DurationHours, "duration adjusted by +0.5h")
}

func TestApplyAdaptation_MovesOtherScheduledSession(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC)

	_, _, missedSess := seedSession(t, env, now.AddDate(0, 0, -1))

	// A second chapter with a still-scheduled session the plan moves.
	subj2 := testutil.NewTestSubject("Math")
	require.NoError(t, env.subjects.Create(ctx, subj2))
	optics := testutil.NewTestChapter(subj2.ID, "Optics")
	require.NoError(t, env.chapters.Create(ctx, optics))
	target := testutil.NewTestSession(optics.ID, testutil.WithScheduledAt(now.AddDate(0, 0, 2)))
	require.NoError(t, env.sessions.Create(ctx, target))

	svc := newAdaptationSvc(env)
	result := planner.AdaptationResult{
		AdaptationPlan: planner.AdaptationPlan{
			ScheduleAdjustments: []planner.ScheduleAdjustment{
				{OriginalSession: "Optics", ChangeType: "reschedule", NewDate: "2026-09-08", NewTime: "10:00"},
				{OriginalSession: "Nonexistent", ChangeType: "reschedule", NewDate: "2026-09-08", NewTime: "11:00"},
				{OriginalSession: "Optics", ChangeType: "extend"},
			},
		},
	}

	require.NoError(t, svc.ApplyAdaptation(ctx, result, missedSess.ID, "missed_session", now))

	moved, err := env.sessions.GetByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionRescheduled, moved.Status)
	assert.True(t, moved.ScheduledAt.Equal(time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC)))
}

func TestApplyAdaptation_UnknownSession(t *testing.T) {
	env := setupEnv(t)
	svc := newAdaptationSvc(env)

	err := svc.ApplyAdaptation(context.Background(), planner.AdaptationResult{}, "no-such-id", "r", time.Now())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestHandleMissedSession_MarksAndAppliesFallback(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC)

	_, _, sess := seedSession(t, env, now.Add(-time.Hour))
	svc := newAdaptationSvc(env)

	adapted, err := svc.HandleMissedSession(ctx, sess.ID, "overslept", now)
	require.NoError(t, err)
	assert.True(t, adapted)

	missed, err := env.sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionMissed, missed.Status)
	assert.Equal(t, "overslept", missed.MissReason())

	records, err := env.adaptations.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "missed_session: overslept", records[0].Adaptation.Reason)

	// The fallback reschedules to the next day at the same time of day.
	upcoming, err := env.sessions.ListUpcoming(ctx, now, now.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, domain.SessionRescheduled, upcoming[0].Session.Status)
	assert.Equal(t, "2026-09-03", upcoming[0].Session.ScheduledAt.Format("2006-01-02"))
}

// markMissedCopy returns the session transitioned to missed, for seeding.
func markMissedCopy(s *domain.StudySession, now time.Time) *domain.StudySession {
	copied := *s
	copied.MarkMissed("seeded miss", now)
	return &copied
}
