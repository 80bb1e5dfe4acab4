// Package recommend turns user preferences into a short, varied list of books.
//
// Generation pools works from the genres' catalog subjects, enriches the head
// of the pool with edition data, filters out books too long for the reader,
// ranks the rest and tops up from a generic query when the pool runs dry.
package recommend

import (
	"context"
	"log/slog"

	"github.com/lectoraapp/lectora/internal/domain"
	"github.com/lectoraapp/lectora/internal/genre"
)

// Tuning constants for a generation run.
const (
	DefaultMaxResults = 6

	subjectLimit   = 40
	slugBatchSize  = 3
	minPoolTarget  = 36
	poolMultiplier = 8
	enrichTake     = 14

	minFallbackLimit   = 60
	fallbackMultiplier = 12

	minSoftExclusion        = 10
	softExclusionMultiplier = 3
)

// Catalog is the slice of the catalog client the engine needs.
type Catalog interface {
	SearchBySubjectSlugs(ctx context.Context, slugs []string, limitPerSlug int) []domain.Book
	Enrich(ctx context.Context, books []domain.Book, take int) []domain.Book
	Recommended(ctx context.Context, genre string, maxResults int, lang string) []domain.Book
}

// Result is one generation run.
type Result struct {
	Books        []domain.Book
	PoolSize     int // candidates that passed the filters
	UsedFallback bool
}

// Engine generates recommendations. It holds no per-user state.
type Engine struct {
	catalog   Catalog
	perturber Perturber
	logger    *slog.Logger
}

// NewEngine creates an engine. A nil perturber disables perturbation.
func NewEngine(catalog Catalog, perturber Perturber, logger *slog.Logger) *Engine {
	if perturber == nil {
		perturber = NoPerturbation{}
	}
	return &Engine{catalog: catalog, perturber: perturber, logger: logger}
}

// Generate builds up to maxResults recommendations for prefs, which may be nil.
// Books in recent are avoided while enough alternatives remain.
// Catalog failures shrink the result; an empty result is valid.
func (e *Engine) Generate(ctx context.Context, prefs *domain.UserPrefs, maxResults int, recent domain.RecentWindow) Result {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	p := effectivePrefs(prefs)

	var pool []domain.Book
	if slugs := genre.SubjectSlugs(p.Genres); len(slugs) > 0 {
		pool = e.subjectPool(ctx, slugs, max(minPoolTarget, maxResults*poolMultiplier))
		pool = e.catalog.Enrich(ctx, pool, enrichTake)
		pool = e.rank(pool, p)
	}

	usedFallback := false
	if len(pool) < maxResults && ctx.Err() == nil {
		usedFallback = true
		limit := max(minFallbackLimit, maxResults*fallbackMultiplier)
		lang := string(domain.SearchLanguage(p.LanguageMode))
		fallback := e.catalog.Recommended(ctx, "", limit, lang)
		pool = e.rank(domain.UniqueBooks(append(pool, fallback...)), p)
	}

	poolSize := len(pool)
	books := softExclude(pool, recent, max(minSoftExclusion, maxResults*softExclusionMultiplier))
	if len(books) > maxResults {
		books = books[:maxResults]
	}

	e.logger.Debug("recommendations generated",
		"signature", prefs.Signature(),
		"pool", poolSize,
		"returned", len(books),
		"fallback", usedFallback,
	)

	return Result{Books: books, PoolSize: poolSize, UsedFallback: usedFallback}
}

// subjectPool fetches slugs in batches until the pool reaches target.
func (e *Engine) subjectPool(ctx context.Context, slugs []string, target int) []domain.Book {
	var pool []domain.Book
	for start := 0; start < len(slugs); start += slugBatchSize {
		if ctx.Err() != nil {
			break
		}
		batch := slugs[start:min(start+slugBatchSize, len(slugs))]
		pool = domain.UniqueBooks(append(pool, e.catalog.SearchBySubjectSlugs(ctx, batch, subjectLimit)...))
		if len(pool) >= target {
			break
		}
	}
	return pool
}

// rank filters, sorts and perturbs a candidate pool.
func (e *Engine) rank(pool []domain.Book, p domain.UserPrefs) []domain.Book {
	ranked := Filter(pool, p)
	Sort(ranked, p)
	return e.perturber.Perturb(ranked)
}

// softExclude drops recently shown books unless fewer than threshold would remain.
func softExclude(pool []domain.Book, recent domain.RecentWindow, threshold int) []domain.Book {
	if len(recent) == 0 {
		return pool
	}
	seen := recent.Set()
	fresh := make([]domain.Book, 0, len(pool))
	for _, b := range pool {
		if _, shown := seen[b.ID]; !shown {
			fresh = append(fresh, b)
		}
	}
	if len(fresh) < threshold {
		return pool
	}
	return fresh
}

func effectivePrefs(prefs *domain.UserPrefs) domain.UserPrefs {
	if prefs == nil {
		return domain.UserPrefs{}
	}
	return *prefs
}
