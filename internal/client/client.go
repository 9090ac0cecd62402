// Package client consumes the stats endpoint: a thin HTTP client plus a Poller that keeps the
// latest record fresh for display.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"exusiai.dev/folio-stats/internal/core/leetcode"
)

const statsPath = "/api/stats"

// APIError is a non-2xx answer of the stats endpoint.
type APIError struct {
	StatusCode int
	ErrorText  string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.ErrorText == "" {
		return fmt.Sprintf("folio-stats: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("folio-stats: %d %s: %s", e.StatusCode, e.ErrorText, e.Message)
}

type Client struct {
	endpoint string
	http     *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// New returns a Client for the server at endpoint, e.g. "http://localhost:9010".
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		http:     &http.Client{Timeout: time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetStats fetches the stats of username. An empty username asks for the server's default.
func (c *Client) GetStats(ctx context.Context, username string) (*leetcode.StatsResponse, error) {
	u := c.endpoint + statsPath
	if username != "" {
		u += "?" + url.Values{"username": {username}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "client: failed to build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "client: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "client: failed to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// best effort: the body may not be ours, e.g. from a proxy in between
		_ = json.Unmarshal(body, apiErr)
		return nil, apiErr
	}

	var stats leetcode.StatsResponse
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, errors.Wrap(err, "client: failed to decode response")
	}
	return &stats, nil
}
