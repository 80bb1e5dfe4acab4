package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lectoraapp/lectora/internal/domain"
	"github.com/lectoraapp/lectora/internal/id"
	"github.com/lectoraapp/lectora/internal/recommend"
	"github.com/lectoraapp/lectora/internal/store"
)

// EmptyRecommendationsMessage is shown when no recommendations could be built.
const EmptyRecommendationsMessage = "No se pudieron cargar recomendaciones. Intenta de nuevo más tarde."

// Generator produces a recommendation run.
type Generator interface {
	Generate(ctx context.Context, prefs *domain.UserPrefs, maxResults int, recent domain.RecentWindow) recommend.Result
}

// RecommendationOptions tunes the daily recommendation cache.
type RecommendationOptions struct {
	MaxResults       int
	RefreshesPerDay  int
	RecentWindowSize int
}

// Recommendations is the home screen's view of today's list.
type Recommendations struct {
	Date          string        `json:"date"`
	Books         []domain.Book `json:"books"`
	BatchID       string        `json:"batchId,omitempty"`
	GeneratedAt   time.Time     `json:"generatedAt"`
	FromCache     bool          `json:"fromCache"`
	RefreshesUsed int           `json:"refreshesUsed"`
	RefreshLimit  int           `json:"refreshLimit"`
	CanRefresh    bool          `json:"canRefresh"`
	Empty         bool          `json:"empty"`
	Message       string        `json:"message,omitempty"`
}

// RecommendationService caches one list per day and preference signature, with
// a small daily budget of manual refreshes.
type RecommendationService struct {
	prefs     *store.Prefs
	generator Generator
	clock     Clock
	loc       *time.Location
	opts      RecommendationOptions
	logger    *slog.Logger

	mu sync.Mutex
}

// NewRecommendationService creates a recommendation service. Zero options take defaults.
func NewRecommendationService(prefs *store.Prefs, generator Generator, opts RecommendationOptions, clock Clock, logger *slog.Logger) *RecommendationService {
	if opts.MaxResults <= 0 {
		opts.MaxResults = recommend.DefaultMaxResults
	}
	if opts.RefreshesPerDay <= 0 {
		opts.RefreshesPerDay = 3
	}
	if opts.RecentWindowSize <= 0 {
		opts.RecentWindowSize = 30
	}
	return &RecommendationService{
		prefs:     prefs,
		generator: generator,
		clock:     clock.orNow(),
		loc:       time.Local,
		opts:      opts,
		logger:    logger,
	}
}

// WithLocation returns s using loc for calendar days.
func (s *RecommendationService) WithLocation(loc *time.Location) *RecommendationService {
	s.loc = loc
	return s
}

// recState is everything one call reads from the store.
type recState struct {
	date      string
	prefs     *domain.UserPrefs
	signature string
	cache     domain.RecommendationCache
	budget    domain.RefreshBudget
}

// Today returns today's recommendations, generating them when the cache is
// stale, empty, or was built for other preferences. A fresh cache never
// touches the network.
func (s *RecommendationService) Today(ctx context.Context) (Recommendations, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.loadState(ctx)
	if st.cache.Fresh(st.date, st.signature) {
		return s.view(st, true), nil
	}

	if !st.budget.Current(st.date, st.signature) {
		if err := s.resetBudget(ctx, &st); err != nil {
			return Recommendations{}, err
		}
	}
	if err := s.generate(ctx, &st); err != nil {
		return Recommendations{}, err
	}
	return s.view(st, false), nil
}

// Refresh regenerates today's list, spending one unit of the daily budget.
// A new day or changed preferences regenerate without spending budget.
// With the budget exhausted, the cached list is returned unchanged.
func (s *RecommendationService) Refresh(ctx context.Context) (Recommendations, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.loadState(ctx)
	stale := st.cache.Date != st.date || st.cache.PrefsSignature != st.signature
	if stale || !st.budget.Current(st.date, st.signature) {
		if err := s.resetBudget(ctx, &st); err != nil {
			return Recommendations{}, err
		}
		if err := s.generate(ctx, &st); err != nil {
			return Recommendations{}, err
		}
		return s.view(st, false), nil
	}

	if st.budget.Used >= s.opts.RefreshesPerDay {
		s.logger.Debug("refresh budget exhausted", "used", st.budget.Used)
		return s.view(st, true), nil
	}

	if err := s.generate(ctx, &st); err != nil {
		return Recommendations{}, err
	}
	st.budget.Used++
	if err := s.prefs.Save(ctx, store.KeyRecommendRefreshes, st.budget); err != nil {
		return Recommendations{}, err
	}
	return s.view(st, false), nil
}

func (s *RecommendationService) loadState(ctx context.Context) recState {
	var prefs *domain.UserPrefs
	if p, ok := store.Lookup[domain.UserPrefs](ctx, s.prefs, store.KeyUserPrefs); ok {
		prefs = &p
	}

	return recState{
		date:      domain.DateOf(s.clock(), s.loc),
		prefs:     prefs,
		signature: prefs.Signature(),
		cache:     store.Load(ctx, s.prefs, store.KeyRecommendations, domain.RecommendationCache{}),
		budget:    store.Load(ctx, s.prefs, store.KeyRecommendRefreshes, domain.RefreshBudget{}),
	}
}

func (s *RecommendationService) resetBudget(ctx context.Context, st *recState) error {
	st.budget = domain.RefreshBudget{Date: st.date, PrefsSignature: st.signature}
	return s.prefs.Save(ctx, store.KeyRecommendRefreshes, st.budget)
}

// generate runs the engine, caches the result and records the shown ids.
func (s *RecommendationService) generate(ctx context.Context, st *recState) error {
	recent := store.Load(ctx, s.prefs, store.KeyRecentRecommended, domain.RecentWindow{})
	res := s.generator.Generate(ctx, st.prefs, s.opts.MaxResults, recent)

	books := res.Books
	if books == nil {
		books = []domain.Book{}
	}
	st.cache = domain.RecommendationCache{
		Date:           st.date,
		PrefsSignature: st.signature,
		Books:          books,
		BatchID:        id.Batch(),
		GeneratedAt:    s.clock().UTC(),
	}
	if err := s.prefs.Save(ctx, store.KeyRecommendations, st.cache); err != nil {
		return err
	}

	if len(books) > 0 {
		shown := make([]string, len(books))
		for i, b := range books {
			shown[i] = b.ID
		}
		recent = recent.Push(shown, s.opts.RecentWindowSize)
		if err := s.prefs.Save(ctx, store.KeyRecentRecommended, recent); err != nil {
			return err
		}
	}

	s.logger.Info("recommendations generated",
		"batch_id", st.cache.BatchID,
		"count", len(books),
		"pool", res.PoolSize,
		"fallback", res.UsedFallback,
	)
	return nil
}

func (s *RecommendationService) view(st recState, fromCache bool) Recommendations {
	used := 0
	if st.budget.Current(st.date, st.signature) {
		used = st.budget.Used
	}

	r := Recommendations{
		Date:          st.date,
		Books:         st.cache.Books,
		BatchID:       st.cache.BatchID,
		GeneratedAt:   st.cache.GeneratedAt,
		FromCache:     fromCache,
		RefreshesUsed: used,
		RefreshLimit:  s.opts.RefreshesPerDay,
		CanRefresh:    used < s.opts.RefreshesPerDay,
		Empty:         len(st.cache.Books) == 0,
	}
	if r.Books == nil {
		r.Books = []domain.Book{}
	}
	if r.Empty {
		r.Message = EmptyRecommendationsMessage
	}
	return r
}
