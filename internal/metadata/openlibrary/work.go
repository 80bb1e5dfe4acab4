package openlibrary

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lectoraapp/lectora/internal/domain"
	"github.com/lectoraapp/lectora/internal/normalize"
)

const (
	detailEditions   = 15
	maxDetailAuthors = 3
)

// GetByID fetches a work with its editions and author names.
// The work lookup must succeed; editions and authors are best effort.
func (c *Client) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, "/?#") {
		return nil, wrapError("work", id, ErrInvalidID)
	}

	var (
		work     rawWork
		editions rawEditions
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := c.getJSON(gctx, familyWorks, "/works/"+url.PathEscape(id)+".json", nil, &work); err != nil {
			return wrapError("work", id, err)
		}
		return nil
	})
	g.Go(func() error {
		eds, err := c.editions(gctx, id, detailEditions)
		if err != nil {
			c.logger.Debug("editions lookup failed", "work_id", id, "error", err)
			return nil
		}
		editions = eds
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	authors := c.authorNames(ctx, workAuthorIDs(&work, maxDetailAuthors))
	coverID := firstCover(work.Covers)

	book := &domain.Book{
		ID:            id,
		Title:         normalize.Title(work.Title),
		Authors:       authors,
		Description:   normalize.Description(string(work.Description)),
		PageCount:     editionPages(editions.Entries),
		Language:      editionLanguage(editions.Entries),
		Categories:    normalize.Subjects(work.Subjects),
		Thumbnail:     c.coverURL(coverID, CoverLarge),
		PreviewLink:   workLink(id),
		PublishedDate: workPublishedDate(&work),
		EditionCount:  editions.Size,
	}
	return book, nil
}

// editions fetches up to limit editions of a work.
func (c *Client) editions(ctx context.Context, id string, limit int) (rawEditions, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var resp rawEditions
	if err := c.getJSON(ctx, familyWorks, "/works/"+url.PathEscape(id)+"/editions.json", query, &resp); err != nil {
		return rawEditions{}, wrapError("editions", id, err)
	}
	return resp, nil
}

// authorNames resolves author IDs concurrently, keeping input order and
// skipping any that fail or have no name.
func (c *Client) authorNames(ctx context.Context, ids []string) []string {
	if len(ids) == 0 {
		return nil
	}

	names := make([]string, len(ids))
	var wg sync.WaitGroup
	for i, authorID := range ids {
		wg.Go(func() {
			name, err := c.authorName(ctx, authorID)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					c.logger.Debug("author lookup failed", "author_id", authorID, "error", err)
				}
				return
			}
			names[i] = name
		})
	}
	wg.Wait()

	out := domain.UniqueStrings(names, 0)
	if len(out) == 0 {
		return nil
	}
	return out
}

func (c *Client) authorName(ctx context.Context, id string) (string, error) {
	var resp rawAuthor
	if err := c.getJSON(ctx, familyAuthors, "/authors/"+url.PathEscape(id)+".json", nil, &resp); err != nil {
		return "", wrapError("author", id, err)
	}
	return strings.TrimSpace(resp.Name), nil
}
