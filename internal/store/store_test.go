package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studypulse/studypulse/internal/catalog"
	"github.com/studypulse/studypulse/internal/selector"
	"github.com/studypulse/studypulse/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"), catalog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testSelection(userID string) *selector.WeeklySelection {
	cat := catalog.Default()
	easy, _ := cat.ByTitle("Getting Started")
	medium, _ := cat.ByTitle("Busy Bee")
	hard, _ := cat.ByTitle("Perfect Week")
	weekStart := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	return &selector.WeeklySelection{
		UserID:     userID,
		WeekStart:  weekStart,
		WeekEnd:    weekStart.AddDate(0, 0, 7).Add(-time.Millisecond),
		SelectedAt: time.Now().UTC(),
		Easy:       easy,
		Medium:     medium,
		Hard:       hard,
	}
}

func TestSelectionRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	missing, err := st.GetSelection(ctx, "u1", time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, missing)

	sel := testSelection("u1")
	stored, err := st.CreateSelection(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, sel.Titles(), stored.Titles())

	got, err := st.GetSelection(ctx, "u1", sel.WeekStart)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sel.Titles(), got.Titles())
	assert.Equal(t, catalog.TierHard, got.Hard.Tier)
}

// A second create for the same (user, week) returns the first selection
// untouched.
func TestCreateSelectionIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first := testSelection("u1")
	_, err := st.CreateSelection(ctx, first)
	require.NoError(t, err)

	cat := catalog.Default()
	second := testSelection("u1")
	second.Easy, _ = cat.ByTitle("On Time")

	stored, err := st.CreateSelection(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, first.Titles(), stored.Titles())
}

func TestLedger(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	titles, err := st.UsedTitles(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, titles)

	require.NoError(t, st.AppendTitles(ctx, "u1", []string{"Getting Started", "Busy Bee"}))
	require.NoError(t, st.AppendTitles(ctx, "u1", []string{"Busy Bee", "Perfect Week"}))

	titles, err = st.UsedTitles(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Getting Started", "Busy Bee", "Perfect Week"}, titles)

	other, err := st.UsedTitles(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, st.ClearTitles(ctx, "u1"))
	titles, err = st.UsedTitles(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestRecordUnlockIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	def, _ := catalog.Default().ByTitle("Busy Bee")

	created, err := st.RecordUnlock(ctx, "u1", def)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = st.RecordUnlock(ctx, "u1", def)
	require.NoError(t, err)
	assert.False(t, created)

	unlocks, err := st.Unlocks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, unlocks, 1)
	assert.Equal(t, "Busy Bee", unlocks[0].Title)
	assert.Equal(t, def.Points, unlocks[0].Points)
	assert.False(t, unlocks[0].Notified)
}

func TestMarkNotified(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	def, _ := catalog.Default().ByTitle("Busy Bee")

	_, err := st.RecordUnlock(ctx, "u1", def)
	require.NoError(t, err)
	require.NoError(t, st.MarkNotified(ctx, "u1", "Busy Bee"))

	unlocks, err := st.Unlocks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, unlocks, 1)
	assert.True(t, unlocks[0].Notified)
}

func TestGetSelectionUnknownTitle(t *testing.T) {
	tiny, err := catalog.New([]catalog.Definition{
		{Title: "Only Easy", Description: "d", Tier: catalog.TierEasy, Category: catalog.CategoryEngagement, Points: 10, CalculationMethod: "complete at least 1 assignment"},
		{Title: "Only Medium", Description: "d", Tier: catalog.TierMedium, Category: catalog.CategoryEngagement, Points: 20, CalculationMethod: "complete at least 3 assignments"},
		{Title: "Only Hard", Description: "d", Tier: catalog.TierHard, Category: catalog.CategoryEngagement, Points: 30, CalculationMethod: "complete at least 5 assignments"},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "test.db")
	full, err := store.NewStore(path, catalog.Default())
	require.NoError(t, err)

	ctx := context.Background()
	_, err = full.CreateSelection(ctx, testSelection("u1"))
	require.NoError(t, err)
	require.NoError(t, full.Close())

	// Reopen with a catalog that no longer carries the stored titles.
	shrunk, err := store.NewStore(path, tiny)
	require.NoError(t, err)
	t.Cleanup(func() { shrunk.Close() })

	_, err = shrunk.GetSelection(ctx, "u1", time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))
	var unknown *store.UnknownTitleError
	assert.ErrorAs(t, err, &unknown)
}
