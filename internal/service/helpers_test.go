package service

import (
	"testing"
	"time"

	"github.com/lectoraapp/lectora/internal/logger"
	"github.com/lectoraapp/lectora/internal/store"
)

func newTestPrefs(t *testing.T) (*store.Prefs, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	t.Cleanup(func() { _ = kv.Close() })
	return store.NewPrefs(kv, logger.Discard()), kv
}

// testClock is a settable clock.
type testClock struct {
	now time.Time
}

func newTestClock(date string) *testClock {
	c := &testClock{}
	c.set(date)
	return c
}

func (c *testClock) set(date string) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" 12:00", time.UTC)
	if err != nil {
		panic(err)
	}
	c.now = t
}

func (c *testClock) Now() time.Time {
	return c.now
}
