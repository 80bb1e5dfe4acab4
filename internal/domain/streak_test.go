package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) *string { return &s }

func TestStreakState_ReadOn(t *testing.T) {
	tests := []struct {
		name      string
		state     StreakState
		today     string
		wantCount int
	}{
		{name: "first read", state: StreakState{}, today: "2026-03-01", wantCount: 1},
		{name: "same day is a no-op", state: StreakState{StreakCount: 4, LastReadISO: date("2026-03-01")}, today: "2026-03-01", wantCount: 4},
		{name: "next day extends", state: StreakState{StreakCount: 4, LastReadISO: date("2026-02-28")}, today: "2026-03-01", wantCount: 5},
		{name: "gap restarts", state: StreakState{StreakCount: 4, LastReadISO: date("2026-02-26")}, today: "2026-03-01", wantCount: 1},
		{name: "future last read restarts", state: StreakState{StreakCount: 9, LastReadISO: date("2026-03-05")}, today: "2026-03-01", wantCount: 1},
		{name: "corrupt date restarts", state: StreakState{StreakCount: 2, LastReadISO: date("yesterday")}, today: "2026-03-01", wantCount: 1},
		{name: "year boundary", state: StreakState{StreakCount: 2, LastReadISO: date("2025-12-31")}, today: "2026-01-01", wantCount: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.state.ReadOn(tt.today)
			assert.Equal(t, tt.wantCount, got.StreakCount)
			assert.Equal(t, tt.today, got.LastRead())
		})
	}
}

func TestDaysBetween(t *testing.T) {
	n, err := DaysBetween("2026-03-28", "2026-03-30")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = DaysBetween("2026-03-30", "2026-03-28")
	require.NoError(t, err)
	assert.Equal(t, -2, n)

	_, err = DaysBetween("03/28/2026", "2026-03-30")
	assert.Error(t, err)
}

func TestDateOf_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	instant := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-01-01", DateOf(instant, loc))
	assert.Equal(t, "2026-01-02", DateOf(instant, time.UTC))
}
