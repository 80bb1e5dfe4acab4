package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lectoraapp/lectora/internal/domain"
	"github.com/lectoraapp/lectora/internal/store"
)

// StreakService counts consecutive local calendar days with reading.
type StreakService struct {
	prefs  *store.Prefs
	clock  Clock
	loc    *time.Location
	logger *slog.Logger

	mu sync.Mutex
}

// NewStreakService creates a streak service using the local time zone.
// A nil clock means time.Now.
func NewStreakService(prefs *store.Prefs, clock Clock, logger *slog.Logger) *StreakService {
	return &StreakService{
		prefs:  prefs,
		clock:  clock.orNow(),
		loc:    time.Local,
		logger: logger,
	}
}

// WithLocation returns s using loc for calendar days.
func (s *StreakService) WithLocation(loc *time.Location) *StreakService {
	s.loc = loc
	return s
}

// Get returns the stored streak, or a fresh one.
func (s *StreakService) Get(ctx context.Context) domain.StreakState {
	return store.Load(ctx, s.prefs, store.KeyStreak, domain.StreakState{})
}

// MarkReadToday records reading today. Repeated calls on one day are no-ops.
func (s *StreakService) MarkReadToday(ctx context.Context) (domain.StreakState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.Today()
	current := s.Get(ctx)
	next := current.ReadOn(today)
	if next.LastRead() == current.LastRead() && next.StreakCount == current.StreakCount {
		return current, nil
	}

	if err := s.prefs.Save(ctx, store.KeyStreak, next); err != nil {
		return current, err
	}
	s.logger.Debug("streak updated", "count", next.StreakCount, "date", today)
	return next, nil
}

// Reset clears the streak.
func (s *StreakService) Reset(ctx context.Context) (domain.StreakState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := domain.StreakState{}
	if err := s.prefs.Save(ctx, store.KeyStreak, fresh); err != nil {
		return domain.StreakState{}, err
	}
	return fresh, nil
}

// Today is the current local calendar date.
func (s *StreakService) Today() string {
	return domain.DateOf(s.clock(), s.loc)
}
