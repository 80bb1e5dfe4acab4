package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectoraapp/lectora/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prefs.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_WALMode(t *testing.T) {
	s := newTestStore(t)

	var journalMode string
	require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Get(ctx, store.KeyStreak)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Set(ctx, store.KeyStreak, []byte(`{"streakCount":1}`)))
	require.NoError(t, s.Set(ctx, store.KeyStreak, []byte(`{"streakCount":2}`)))

	got, err := s.Get(ctx, store.KeyStreak)
	require.NoError(t, err)
	assert.JSONEq(t, `{"streakCount":2}`, string(got))

	require.NoError(t, s.Delete(ctx, store.KeyStreak))
	_, err = s.Get(ctx, store.KeyStreak)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.NoError(t, s.Delete(ctx, "never-written"))
}

func TestStore_UpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	fixed := time.Date(2026, 4, 1, 8, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.Set(ctx, store.KeyUserPrefs, []byte(`{}`)))

	at, err := s.UpdatedAt(ctx, store.KeyUserPrefs)
	require.NoError(t, err)
	assert.True(t, fixed.Equal(at))

	_, err = s.UpdatedAt(ctx, store.KeyFinished)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_WorksWithPrefs(t *testing.T) {
	ctx := context.Background()
	prefs := store.NewPrefs(newTestStore(t), nil)

	require.NoError(t, prefs.Save(ctx, store.KeyToRead, []string{"OL1W", "OL2W"}))
	got := store.Load(ctx, prefs, store.KeyToRead, []string(nil))
	assert.Equal(t, []string{"OL1W", "OL2W"}, got)
	assert.NoError(t, prefs.Ping(ctx))
}
