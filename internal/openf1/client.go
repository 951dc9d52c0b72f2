// Package openf1 is a client for the OpenF1 REST API, which publishes
// positional telemetry (car location samples) alongside per-lap metadata for
// recent seasons. It feeds the replay engine its raw X/Y coordinates; when
// the API has nothing for a session the caller degrades to synthetic paths.
package openf1

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.openf1.org/v1"

// New returns a new OpenF1 API client.
func New(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     defaultBaseURL,
		httpc:       http.DefaultClient,
		logger:      slog.Default(),
		sessionKeys: make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Client queries the OpenF1 API. It is safe for concurrent use; the race
// session key for an event is resolved once and shared across the per-driver
// telemetry fetches.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger

	mu          sync.Mutex
	sessionKeys map[string]int
}

/* Client Optional Functional Parameters
------------------------------------------------------------------------------------------------- */

type ClientOption = func(c *Client)

// WithBaseURL configures the URL of the OpenF1 API; primarily used for
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

/* Private Helper Functions
------------------------------------------------------------------------------------------------- */

// get fetches one API path (relative to the base URL, including the query
// string) and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("error building openf1 request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling openf1 api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openf1 api returned %s for %s", resp.Status, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading openf1 response: %w", err)
	}

	return body, nil
}

// The API returns timestamps both with and without a zone offset; zoneless
// ones are UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable openf1 date %q", s)
}

// formatDate renders a timestamp the way the API's date filters expect.
func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000")
}
