package main

import (
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/cache"
	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/resilience"
	"github.com/sells-group/leadgen-cli/pkg/places"
)

// newPlacesClient builds the Places client from configuration, wiring
// the shared rate limiter, linear retry, token delay, and the per-run
// memo cache.
func newPlacesClient(cfg *config.Config) (places.Client, error) {
	if cfg.Google.APIKey == "" {
		return nil, eris.New("google api key not configured (set GOOGLE_MAPS_API_KEY or google.api_key)")
	}

	opts := []places.Option{
		places.WithBaseURL(cfg.Google.BaseURL),
		places.WithLocale(cfg.Google.Language, cfg.Google.Region),
		places.WithRateLimit(cfg.Google.RateLimitRPS),
		places.WithRetry(resilience.FromRetryConfig(cfg.Google.MaxAttempts, cfg.Google.RetryBaseDelayMs, cfg.Google.RetryStepMs)),
		places.WithTokenDelay(time.Duration(cfg.Google.PageTokenDelaySec) * time.Second),
		places.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Google.TimeoutSecs) * time.Second}),
	}
	if cfg.Cache.TTLMinutes > 0 {
		opts = append(opts, places.WithCache(cache.NewMemory(), time.Duration(cfg.Cache.TTLMinutes)*time.Minute))
	}

	return places.NewClient(cfg.Google.APIKey, opts...), nil
}
