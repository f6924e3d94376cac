package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cramplan/internal/repository"
	"cramplan/internal/testutil"
)

// fakeLookup is a contentlookup.Client returning a fixed summary.
type fakeLookup struct {
	text string
}

func (f fakeLookup) FetchTopicSummary(ctx context.Context, topic string) string {
	return f.text
}

func TestFetchChapterContent_AttachesSummaryAndReference(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	subj := testutil.NewTestSubject("Biology")
	require.NoError(t, env.subjects.Create(ctx, subj))
	ch := testutil.NewTestChapter(subj.ID, "Photosynthesis")
	require.NoError(t, env.chapters.Create(ctx, ch))

	lookup := fakeLookup{text: "Photosynthesis converts light into chemical energy."}
	svc := NewContentService(env.chapters, lookup, fallbackPlanner(), env.uow, nil)

	found, err := svc.FetchChapterContent(ctx, ch.ID)
	require.NoError(t, err)
	assert.True(t, found)

	updated, err := env.chapters.GetByID(ctx, ch.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.ReferenceText)
	assert.Equal(t, lookup.text, *updated.ReferenceText)
	require.NotNil(t, updated.Summary)
	assert.Contains(t, *updated.Summary, "Photosynthesis", "fallback summary names the topic")
}

func TestFetchChapterContent_NoContentFound(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	subj := testutil.NewTestSubject("Biology")
	require.NoError(t, env.subjects.Create(ctx, subj))
	ch := testutil.NewTestChapter(subj.ID, "Obscure Topic")
	require.NoError(t, env.chapters.Create(ctx, ch))

	svc := NewContentService(env.chapters, fakeLookup{text: ""}, fallbackPlanner(), env.uow, nil)

	found, err := svc.FetchChapterContent(ctx, ch.ID)
	require.NoError(t, err)
	assert.False(t, found)

	updated, err := env.chapters.GetByID(ctx, ch.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.Summary, "nothing attached when lookup finds no content")
	assert.Nil(t, updated.ReferenceText)
}

func TestFetchChapterContent_UnknownChapter(t *testing.T) {
	env := setupEnv(t)
	svc := NewContentService(env.chapters, fakeLookup{}, fallbackPlanner(), env.uow, nil)

	_, err := svc.FetchChapterContent(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
