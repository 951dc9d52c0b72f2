// Package jolpica is a client for the jolpica-f1 REST API (the community
// successor to the Ergast motorsport API). It provides season schedules,
// session results and per-driver lap times, normalized into the domain
// models used by the rest of the application.
package jolpica

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.jolpi.ca/ergast/f1"

// New returns a new jolpica-f1 API client.
func New(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpc:   http.DefaultClient,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Client queries the jolpica-f1 API. It is safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
	now     func() time.Time

	// response cache, enabled via WithCache
	cacheMu sync.Mutex
	cache   map[string][]byte
}

/* Client Optional Functional Parameters
------------------------------------------------------------------------------------------------- */

type ClientOption = func(c *Client)

// WithBaseURL configures the URL of the jolpica-f1 API; primarily used for
// testing.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient configures the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger configures the logger to use within the client.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// WithCache enables in-process memoization of API responses. Historical data
// never changes, so repeat lookups within a run can skip the network.
func WithCache() ClientOption {
	return func(c *Client) { c.cache = make(map[string][]byte) }
}

// WithClock configures the time source used to classify sessions as upcoming
// or completed; primarily used for testing.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

/* Private Helper Functions
------------------------------------------------------------------------------------------------- */

// get fetches one API path (relative to the base URL, including any query
// string) and returns the response body, consulting the cache when enabled.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if c.cache != nil {
		c.cacheMu.Lock()
		body, ok := c.cache[path]
		c.cacheMu.Unlock()
		if ok {
			c.logger.Debug("jolpica cache hit", "path", path)
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("error building jolpica request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling jolpica api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jolpica api returned %s for %s", resp.Status, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading jolpica response: %w", err)
	}

	if c.cache != nil {
		c.cacheMu.Lock()
		c.cache[path] = body
		c.cacheMu.Unlock()
	}

	return body, nil
}
