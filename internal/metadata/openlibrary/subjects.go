package openlibrary

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lectoraapp/lectora/internal/domain"
)

// DefaultSubjectLimit is how many works are requested per subject slug.
const DefaultSubjectLimit = 40

// subjectBatch is how many slugs are fetched concurrently.
const subjectBatch = 3

// SubjectWorks lists works filed under a subject slug.
// Failures are logged and yield an empty result.
func (c *Client) SubjectWorks(ctx context.Context, slug string, limit int) []domain.Book {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return []domain.Book{}
	}
	if limit <= 0 {
		limit = DefaultSubjectLimit
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("details", "true")

	var resp rawSubject
	if err := c.getJSON(ctx, familySubjects, "/subjects/"+url.PathEscape(slug)+".json", query, &resp); err != nil {
		c.logger.Warn("subject lookup failed", "slug", slug, "error", wrapError("subject", slug, err))
		return []domain.Book{}
	}

	books := make([]domain.Book, 0, len(resp.Works))
	for i := range resp.Works {
		b := c.subjectWorkToBook(&resp.Works[i])
		if b.ID == "" {
			continue
		}
		books = append(books, b)
	}
	return books
}

// SearchBySubjectSlugs pools works from every slug, deduplicated by ID in slug order.
// Slugs are fetched in small concurrent batches.
func (c *Client) SearchBySubjectSlugs(ctx context.Context, slugs []string, limitPerSlug int) []domain.Book {
	slugs = domain.UniqueStrings(slugs, 0)
	results := make([][]domain.Book, len(slugs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(subjectBatch)
	for i, slug := range slugs {
		g.Go(func() error {
			results[i] = c.SubjectWorks(gctx, slug, limitPerSlug)
			return nil
		})
	}
	_ = g.Wait() // SubjectWorks never fails

	var pool []domain.Book
	for _, r := range results {
		pool = append(pool, r...)
	}
	return domain.UniqueBooks(pool)
}
