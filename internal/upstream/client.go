// Package upstream fetches the pre-aggregated analytics payloads the
// dashboard renders: builder revenue by time range and the project
// comparison set. Both endpoints are opaque collaborators; only the fields
// the dashboard consumes are part of the contract.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoData marks a successful response whose payload carries nothing to
// render. Callers treat it the same as a failed fetch.
var ErrNoData = errors.New("upstream: empty payload")

// retryBaseDelay controls the base duration for exponential backoff on
// retryable responses. Tests override this to avoid real sleeps.
var retryBaseDelay = 500 * time.Millisecond

const defaultMaxRetries = 2

// Client talks to the analytics upstream over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: defaultMaxRetries,
	}
}

// BuildersRevenue fetches the builder revenue snapshot for a time range.
func (c *Client) BuildersRevenue(ctx context.Context, timeRange string) (RevenueSnapshot, error) {
	tr, err := NormalizeTimeRange(timeRange)
	if err != nil {
		return RevenueSnapshot{}, err
	}

	var snap RevenueSnapshot
	q := url.Values{"timeRange": {tr}}
	if err := c.getJSON(ctx, "/api/builders/revenue", q, &snap); err != nil {
		return RevenueSnapshot{}, err
	}
	if len(snap.Builders) == 0 {
		return RevenueSnapshot{}, fmt.Errorf("builders revenue (%s): %w", tr, ErrNoData)
	}
	return snap, nil
}

// Comparison fetches the project comparison snapshot.
func (c *Client) Comparison(ctx context.Context) (ComparisonSnapshot, error) {
	var snap ComparisonSnapshot
	if err := c.getJSON(ctx, "/api/comparison", nil, &snap); err != nil {
		return ComparisonSnapshot{}, err
	}
	if len(snap.Projects) == 0 {
		return ComparisonSnapshot{}, fmt.Errorf("comparison: %w", ErrNoData)
	}
	return snap, nil
}

// getJSON issues a GET and decodes the JSON body into out. Transport
// errors, 429s and 5xx responses are retried with exponential backoff;
// other non-2xx statuses fail immediately.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("upstream: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := retryBaseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.httpClient.Do(req.Clone(ctx))
		if err != nil {
			lastErr = fmt.Errorf("upstream: %s: %w", path, err)
			continue
		}

		if resp.StatusCode/100 == 2 {
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("upstream: %s: decode: %w", path, err)
			}
			return nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("upstream: %s: status %d", path, resp.StatusCode)
		if !retryableStatus(resp.StatusCode) {
			return lastErr
		}
	}
	return lastErr
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
