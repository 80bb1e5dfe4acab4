// Package store persists lectora preferences as JSON values under string keys.
//
// Backends implement KV; Prefs layers typed JSON access with caller-supplied
// fallbacks on top of any of them.
package store

import (
	"context"
	"errors"
)

// Preference keys. Names match what earlier app versions wrote.
const (
	KeyUserPrefs          = "user_prefs_v1"
	KeyReadingNow         = "reading_now_v1"
	KeyToRead             = "to_read_v1"
	KeyFinished           = "finished_v1"
	KeyProgressLegacy     = "reading_progress_v1"
	KeyProgressPages      = "reading_progress_pages_v1"
	KeyStreak             = "streak_state_v1"
	KeyRecommendations    = "home_recs_cache_v1"
	KeyRecommendRefreshes = "home_rec_refresh_v1"
	KeyRecentRecommended  = "recent_recs_v1"
)

// ErrNotFound is returned by KV.Get for a missing key.
var ErrNotFound = errors.New("store: key not found")

// KV is a durable key-value store. Writes are last-writer-wins per key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Pinger is implemented by backends that can report liveness cheaply.
type Pinger interface {
	Ping(ctx context.Context) error
}
