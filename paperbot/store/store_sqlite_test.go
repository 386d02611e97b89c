package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/paperbot/paperbot/paperbot"
	"github.com/paperbot/paperbot/paperbot/store"
	"github.com/paperbot/paperbot/paperbot/store/sqlite"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := store.Open(context.Background(), sqlite.New(dbPath), paperbot.New(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSaveCompilesAndRoundTrips(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	saved, err := st.Save(ctx, "ml-daily", "auto-ml", "#cs.LG 50 r")
	require.NoError(t, err)

	assert.Equal(t, "ml-daily", saved.Name)
	assert.Equal(t, "auto-ml", saved.Channel)
	assert.Equal(t, "#cs.LG 50 r", saved.Input)
	assert.Equal(t, "cat:cs.LG", saved.Query)
	assert.Equal(t, 50, saved.MaxResults)
	assert.Equal(t, paperbot.SortRelevance, saved.SortBy)
	assert.Equal(t, paperbot.SortDescending, saved.SortOrder)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.True(t, saved.LastRunAt.IsZero())

	got, err := st.Get(ctx, "ml-daily")
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestSaveRejectsBadQuery(t *testing.T) {
	st := newStore(t)

	_, err := st.Save(context.Background(), "bad", "", "quantum foo:bar")
	require.Error(t, err)

	var perr *paperbot.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Unrecognized field: foo", perr.UserMessage())

	_, err = st.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSaveOverwritesByName(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	_, err := st.Save(ctx, "daily", "", "#cs.AI")
	require.NoError(t, err)

	saved, err := st.Save(ctx, "daily", "auto-ai", "#cs.AI 100 ld")
	require.NoError(t, err)
	assert.Equal(t, "auto-ai", saved.Channel)
	assert.Equal(t, 100, saved.MaxResults)
	assert.Equal(t, paperbot.SortLastUpdated, saved.SortBy)

	all, err := st.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListOrdersByName(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := st.Save(ctx, name, "", "quantum")
		require.NoError(t, err)
	}

	all, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name)
	assert.Equal(t, "mid", all[1].Name)
	assert.Equal(t, "zeta", all[2].Name)
}

func TestDelete(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	_, err := st.Save(ctx, "daily", "", "quantum")
	require.NoError(t, err)

	require.NoError(t, st.Delete(ctx, "daily"))
	assert.ErrorIs(t, st.Delete(ctx, "daily"), store.ErrNotFound)

	_, err = st.Get(ctx, "daily")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTouchRecordsLastRun(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	_, err := st.Save(ctx, "daily", "", "quantum")
	require.NoError(t, err)

	ranAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, st.Touch(ctx, "daily", ranAt))

	got, err := st.Get(ctx, "daily")
	require.NoError(t, err)
	assert.Equal(t, ranAt, got.LastRunAt)

	assert.ErrorIs(t, st.Touch(ctx, "missing", ranAt), store.ErrNotFound)
}

func TestSaveRequiresName(t *testing.T) {
	st := newStore(t)
	_, err := st.Save(context.Background(), "", "", "quantum")
	assert.Error(t, err)
}
