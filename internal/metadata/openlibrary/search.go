package openlibrary

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/lectoraapp/lectora/internal/domain"
)

const (
	defaultSearchResults      = 20
	defaultRecommendedResults = 10
	maxSearchResults          = 100

	// GenericQuery is the catalog query used when nothing more specific is known.
	GenericQuery = "popular OR recommended OR classics"
)

// Search runs a free-text catalog search. An empty query returns the generic
// recommended list. Failures are logged and yield an empty result.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) []domain.Book {
	q := strings.TrimSpace(query)
	if q == "" {
		return c.Recommended(ctx, "", opts.MaxResults, opts.Lang)
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultSearchResults
	}

	books, err := c.search(ctx, q, opts)
	if err != nil {
		c.logger.Warn("search failed", "query", q, "error", err)
		return []domain.Book{}
	}
	return books
}

// Recommended returns a generic "popular" list, or books under genre when set.
// Failures are logged and yield an empty result.
func (c *Client) Recommended(ctx context.Context, genre string, maxResults int, lang string) []domain.Book {
	if maxResults <= 0 {
		maxResults = defaultRecommendedResults
	}

	q := GenericQuery
	if sq := subjectQuery(genre); sq != "" {
		q = sq
	}

	books, err := c.search(ctx, q, SearchOptions{MaxResults: maxResults, Lang: lang})
	if err != nil {
		c.logger.Warn("recommended query failed", "query", q, "error", err)
		return []domain.Book{}
	}
	return books
}

func (c *Client) search(ctx context.Context, q string, opts SearchOptions) ([]domain.Book, error) {
	query := url.Values{}
	query.Set("q", q)
	query.Set("limit", strconv.Itoa(min(opts.MaxResults, maxSearchResults)))
	query.Set("fields", searchFields)
	if opts.Lang != "" {
		query.Set("lang", opts.Lang)
	}

	var resp rawSearchResponse
	if err := c.getJSON(ctx, familySearch, "/search.json", query, &resp); err != nil {
		return nil, wrapError("search", q, err)
	}

	books := make([]domain.Book, 0, len(resp.Docs))
	for i := range resp.Docs {
		b := c.docToBook(&resp.Docs[i])
		if b.ID == "" {
			continue
		}
		books = append(books, b)
	}
	return books, nil
}

// subjectQuery builds a search.json subject clause, quoting multi-word subjects.
func subjectQuery(subject string) string {
	s := strings.TrimSpace(subject)
	switch {
	case s == "":
		return ""
	case strings.Contains(s, " "):
		return `subject:"` + s + `"`
	default:
		return "subject:" + s
	}
}
