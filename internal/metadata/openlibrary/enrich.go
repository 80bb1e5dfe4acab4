package openlibrary

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/lectoraapp/lectora/internal/domain"
)

const (
	enrichConcurrency = 4
	enrichEditions    = 12
)

// Enrich backfills page count and language of the first take books from
// their editions. Books past take, and books whose lookup fails, are
// returned unchanged. The input slice is not modified.
func (c *Client) Enrich(ctx context.Context, books []domain.Book, take int) []domain.Book {
	out := slices.Clone(books)
	take = min(max(take, 0), len(out))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range take {
		g.Go(func() error {
			eds, err := c.editions(gctx, out[i].ID, enrichEditions)
			if err != nil {
				c.logger.Debug("enrich failed", "work_id", out[i].ID, "error", err)
				return nil
			}
			if pages := editionPages(eds.Entries); pages > 0 {
				out[i].PageCount = pages
			}
			if lang := editionLanguage(eds.Entries); lang != "" {
				out[i].Language = lang
			}
			if out[i].EditionCount == 0 {
				out[i].EditionCount = eds.Size
			}
			return nil
		})
	}
	_ = g.Wait()

	return out
}
