// =============================================================================
// Price Update Preparation Tool - Reference Sheet Client
// =============================================================================
//
// HTTP client for the reference sheet export endpoint. Responsibilities:
//   - blocking GET with a caller-controlled timeout (default 15s)
//   - rate limiting, so repeated renders cannot hammer the sheet host
//   - TTL caching of the raw CSV body by exact URL through an injected
//     cache.Store
//
// Any network, HTTP-status or read failure surfaces as a FetchError carrying
// the export URL and the underlying cause.
//
// =============================================================================

package refsheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/priceops/priceprep/internal/cache"
)

// DefaultFetchTimeout bounds a single sheet fetch when the caller does not
// configure one.
const DefaultFetchTimeout = 15 * time.Second

// Client fetches reference sheet CSV exports.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	store      cache.Store
	ttl        time.Duration
	log        *zap.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithCache sets the cache store and entry TTL.
func WithCache(store cache.Store, ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.store = store
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client (tests use this together
// with httptest servers).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a Client with an in-memory cache and conservative
// defaults: 15s timeout, one fetch per second with a small burst.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultFetchTimeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 3),
		store:      cache.NewMemory(),
		ttl:        cache.DefaultTTL,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchCSV retrieves the raw CSV body for an export URL, consulting the cache
// first. On a miss the body is fetched, cached, and returned.
func (c *Client) FetchCSV(ctx context.Context, url string) ([]byte, error) {
	if body, ok := c.store.Get(ctx, url); ok {
		c.log.Debug("reference sheet cache hit", zap.String("url", url))
		return body, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	c.log.Info("fetched reference sheet",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
		zap.Duration("latency", time.Since(start)),
	)

	c.store.Set(ctx, url, body, c.ttl)
	return body, nil
}
