package duckhttp

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Client performs one-shot query round trips against a DuckDB HTTP
// endpoint. A client is safe for use by multiple cursors; a weighted
// semaphore caps the number of in-flight requests.
type Client struct {
	config     Config
	httpClient *http.Client
	inflight   *semaphore.Weighted
}

func NewClient(config Config) *Client {
	maxInFlight := config.MaxInFlight

	if maxInFlight <= 0 {
		maxInFlight = DefaultMaxInFlight
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		inflight: semaphore.NewWeighted(maxInFlight),
	}
}

func (c *Client) Config() Config {
	return c.config
}

// Cursor creates an independent cursor backed by this client. Normalize
// options apply to every result set the cursor produces.
func (c *Client) Cursor(opts ...NormalizeOption) *Cursor {
	if c.config.StrictWidth {
		opts = append([]NormalizeOption{WithStrictWidth()}, opts...)
	}

	return &Cursor{
		client:  c,
		opts:    opts,
		results: &ResultSet{},
	}
}

// Send posts the query text to the endpoint and returns the response body.
// Exactly one request is made per call; there are no retries, so a
// non-idempotent statement is never duplicated. A non-2xx status or a
// network failure is returned as a *TransportError.
func (c *Client) Send(ctx context.Context, query string) ([]byte, error) {
	if err := c.inflight.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	defer c.inflight.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL(), strings.NewReader(query))

	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Request-Id", uuid.NewString())

	if key := c.config.APIKey(); key != "" {
		req.Header.Set("X-API-Key", key)
	}

	resp, err := c.httpClient.Do(req)

	if err != nil {
		return nil, &TransportError{Err: err}
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}
