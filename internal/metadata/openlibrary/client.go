// Package openlibrary is a rate-limited client for the public OpenLibrary API.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lectoraapp/lectora/internal/ratelimit"
)

const (
	// Rate limit per endpoint family: 3 requests per second, burst of 6.
	defaultRPS   = 3.0
	defaultBurst = 6

	defaultTimeout   = 15 * time.Second
	defaultBaseURL   = "https://openlibrary.org"
	defaultCoversURL = "https://covers.openlibrary.org"
	userAgent        = "Lectora/1.0 (reading tracker)"

	// maxBodyBytes bounds how much of a response is read.
	maxBodyBytes = 8 << 20
)

// Endpoint families; each gets its own token bucket.
const (
	familySearch   = "search"
	familyWorks    = "works"
	familySubjects = "subjects"
	familyAuthors  = "authors"
)

// Options configures a Client. Zero values fall back to production defaults.
type Options struct {
	BaseURL   string
	CoversURL string
	RPS       float64
	Burst     int
	Timeout   time.Duration
}

// Client is a rate-limited OpenLibrary API client.
type Client struct {
	http      *http.Client
	limiter   *ratelimit.KeyedRateLimiter
	baseURL   string
	coversURL string
	logger    *slog.Logger
}

// New creates a new OpenLibrary client.
func New(opts Options, logger *slog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.CoversURL == "" {
		opts.CoversURL = defaultCoversURL
	}
	if opts.RPS <= 0 {
		opts.RPS = defaultRPS
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter:   ratelimit.New(opts.RPS, opts.Burst),
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		coversURL: strings.TrimRight(opts.CoversURL, "/"),
		logger:    logger,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// doRequest executes a GET with rate limiting and maps error statuses to sentinels.
func (c *Client) doRequest(ctx context.Context, family, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx, family); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("openlibrary request",
		"family", family,
		"path", path,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
}

// getJSON fetches path and decodes the body into v.
func (c *Client) getJSON(ctx context.Context, family, path string, query url.Values, v any) error {
	body, err := c.doRequest(ctx, family, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
