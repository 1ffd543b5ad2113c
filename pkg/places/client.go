// Package places wraps the Google Places legacy JSON API (Text Search
// and Place Details) with rate limiting, linear-backoff retry, and an
// optional response memo cache.
package places

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/leadgen-cli/internal/cache"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/resilience"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Client performs Places API operations.
type Client interface {
	// TextSearch runs one page of a free-text search. pageToken is
	// empty for the first page.
	TextSearch(ctx context.Context, term model.SearchTerm, pageToken string) (*SearchPage, error)

	// Details fetches the detail record for one place id. A non-OK,
	// non-denied body status yields an empty record, not an error.
	Details(ctx context.Context, placeID string) (*model.DetailRecord, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithLocale sets the language and region qualifiers sent on every call.
func WithLocale(language, region string) Option {
	return func(c *httpClient) {
		c.language = language
		c.region = region
	}
}

// WithRateLimit sets the requests-per-second budget shared by search
// and detail calls, irrespective of which district issues them.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

// WithRetry overrides the default retry configuration.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *httpClient) {
		c.retry = cfg
	}
}

// WithTokenDelay sets how long the client waits before using a
// next-page token. The API needs a short propagation window after
// issuing a token; using it earlier returns INVALID_REQUEST.
func WithTokenDelay(d time.Duration) Option {
	return func(c *httpClient) {
		c.tokenDelay = d
	}
}

// WithCache memoizes raw response bodies keyed by the full request URL.
func WithCache(ca cache.Cache, ttl time.Duration) Option {
	return func(c *httpClient) {
		c.cache = ca
		c.cacheTTL = ttl
	}
}

type httpClient struct {
	apiKey     string
	baseURL    string
	language   string
	region     string
	http       *http.Client
	limiter    *rate.Limiter
	retry      resilience.RetryConfig
	tokenDelay time.Duration
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewClient creates a Places API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter:    rate.NewLimiter(10, 1),
		retry:      resilience.DefaultRetryConfig(),
		tokenDelay: 2 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// get issues one GET with rate limiting and retry, returning the raw
// response body. Query params are extended with the key and locale
// qualifiers. 429 and 5xx are retried with linearly increasing delay;
// any other non-2xx status is surfaced immediately.
func (c *httpClient) get(ctx context.Context, path string, params url.Values, op string) ([]byte, error) {
	params.Set("key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	if c.region != "" {
		params.Set("region", c.region)
	}
	reqURL := c.baseURL + path + "?" + params.Encode()

	if c.cache != nil {
		if body, ok := c.cache.Get(reqURL); ok {
			return []byte(body), nil
		}
	}

	retry := c.retry
	if retry.OnRetry == nil {
		retry.OnRetry = resilience.RetryLogger("places", op)
	}

	body, err := resilience.DoVal(ctx, retry, func(ctx context.Context) ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrapf(err, "places: %s rate limit", op)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, eris.Wrapf(err, "places: %s build request", op)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrapf(err, "places: %s send request", op)
		}
		defer resp.Body.Close() //nolint:errcheck

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrapf(err, "places: %s read response", op)
		}

		if resp.StatusCode != http.StatusOK {
			statusErr := eris.Errorf("places: %s returned status %d", op, resp.StatusCode)
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return nil, resilience.NewTransientError(statusErr, resp.StatusCode)
			}
			return nil, statusErr
		}

		return respBody, nil
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Put(reqURL, string(body), c.cacheTTL)
	}
	return body, nil
}

// waitTokenDelay blocks for the token-propagation window, or until ctx
// is cancelled.
func (c *httpClient) waitTokenDelay(ctx context.Context) error {
	if c.tokenDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.tokenDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return eris.Wrap(ctx.Err(), "places: token delay")
	case <-timer.C:
		return nil
	}
}
