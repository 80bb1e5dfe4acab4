package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectoraapp/lectora/internal/store"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	s, err := Open(context.Background(), "redis://"+mr.Addr()+"/0", nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	_, err := s.Get(ctx, store.KeyUserPrefs)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Set(ctx, store.KeyUserPrefs, []byte(`{"level":"NEW"}`)))

	got, err := s.Get(ctx, store.KeyUserPrefs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"NEW"}`, string(got))

	raw, err := mr.Get("lectora:" + store.KeyUserPrefs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"NEW"}`, raw, "keys are namespaced")

	require.NoError(t, s.Delete(ctx, store.KeyUserPrefs))
	_, err = s.Get(ctx, store.KeyUserPrefs)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)
	mr.Close()

	_, err := s.Get(ctx, store.KeyStreak)
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)

	prefs := store.NewPrefs(s, nil)
	got := store.Load(ctx, prefs, store.KeyStreak, 7)
	assert.Equal(t, 7, got, "read failures fall back")
}

func TestOpen_BadURL(t *testing.T) {
	_, err := Open(context.Background(), "not a url", nil)
	assert.Error(t, err)
}
