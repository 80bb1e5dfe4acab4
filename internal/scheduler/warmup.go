// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/lectoraapp/lectora/internal/service"
)

// warmupTimeout bounds one warmup run, catalog calls included.
const warmupTimeout = 2 * time.Minute

// Warmer builds today's recommendations when they are missing.
type Warmer interface {
	Today(ctx context.Context) (service.Recommendations, error)
}

// parser accepts standard five-field specs plus descriptors like @daily.
var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateSchedule reports whether spec is a usable cron spec. Empty is valid and means disabled.
func ValidateSchedule(spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}
	return nil
}

// WarmupScheduler generates the day's recommendations shortly after midnight
// so the first request of the day is served from cache.
type WarmupScheduler struct {
	warmer   Warmer
	schedule string
	logger   *slog.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
	isWarming bool
}

// NewWarmupScheduler creates a scheduler firing on schedule in loc.
func NewWarmupScheduler(warmer Warmer, schedule string, loc *time.Location, logger *slog.Logger) *WarmupScheduler {
	if loc == nil {
		loc = time.Local
	}
	return &WarmupScheduler{
		warmer:   warmer,
		schedule: schedule,
		logger:   logger,
		cron:     cron.New(cron.WithParser(parser), cron.WithLocation(loc)),
	}
}

// Start schedules the warmup job. An empty schedule leaves the scheduler disabled.
func (s *WarmupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.schedule == "" {
		s.logger.Info("recommendation warmup disabled")
		return nil
	}
	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.Run(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule warmup job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("recommendation warmup scheduled",
		"schedule", s.schedule,
		"next_run", s.cron.Entry(entryID).Next,
	)
	return nil
}

// Shutdown stops the scheduler and waits for a running job. It implements do.Shutdowner.
func (s *WarmupScheduler) Shutdown() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	// Run takes s.mu, so wait for in-flight jobs without holding it.
	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.logger.Info("recommendation warmup stopped")
}

// IsRunning reports whether the job is scheduled.
func (s *WarmupScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// NextRun returns the next scheduled run, or nil when not running.
func (s *WarmupScheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	if next.IsZero() {
		return nil
	}
	return &next
}

// Run warms the cache once. Overlapping runs are skipped.
func (s *WarmupScheduler) Run(ctx context.Context) {
	s.mu.Lock()
	if s.isWarming {
		s.mu.Unlock()
		s.logger.Debug("recommendation warmup skipped, already running")
		return
	}
	s.isWarming = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isWarming = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, warmupTimeout)
	defer cancel()

	start := time.Now()
	recs, err := s.warmer.Today(ctx)
	if err != nil {
		s.logger.Error("recommendation warmup failed", "error", err)
		return
	}
	s.logger.Info("recommendations warmed",
		"date", recs.Date,
		"count", len(recs.Books),
		"from_cache", recs.FromCache,
		"duration", time.Since(start),
	)
}
