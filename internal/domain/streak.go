package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for persisted days.
const DateLayout = "2006-01-02"

// DateOf returns t's calendar date in loc.
func DateOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Format(DateLayout)
}

// DaysBetween counts calendar days from one date to another.
// Dates are compared as UTC midnights, so DST shifts do not skew the count.
func DaysBetween(from, to string) (int, error) {
	a, err := time.Parse(DateLayout, from)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", from, err)
	}
	b, err := time.Parse(DateLayout, to)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", to, err)
	}
	return int(b.Sub(a).Hours() / 24), nil
}

// StreakState counts consecutive reading days.
type StreakState struct {
	StreakCount int     `json:"streakCount"`
	LastReadISO *string `json:"lastReadISO"`
}

// ReadOn returns the state after a read on today.
// Same day is a no-op, the day after extends the streak, anything else restarts it.
func (s StreakState) ReadOn(today string) StreakState {
	if s.LastReadISO == nil {
		return StreakState{StreakCount: 1, LastReadISO: &today}
	}
	if *s.LastReadISO == today {
		return s
	}

	gap, err := DaysBetween(*s.LastReadISO, today)
	if err == nil && gap == 1 {
		return StreakState{StreakCount: s.StreakCount + 1, LastReadISO: &today}
	}
	return StreakState{StreakCount: 1, LastReadISO: &today}
}

// LastRead returns the last read date, or "" when never read.
func (s StreakState) LastRead() string {
	if s.LastReadISO == nil {
		return ""
	}
	return *s.LastReadISO
}
