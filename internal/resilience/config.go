// Package resilience provides retry with linear backoff for external
// service calls.
package resilience

import (
	"time"
)

// FromRetryConfig converts config values to a RetryConfig.
func FromRetryConfig(maxAttempts, baseDelayMs, stepMs int) RetryConfig {
	cfg := DefaultRetryConfig()
	if maxAttempts > 0 {
		cfg.MaxAttempts = maxAttempts
	}
	if baseDelayMs > 0 {
		cfg.BaseDelay = time.Duration(baseDelayMs) * time.Millisecond
	}
	if stepMs > 0 {
		cfg.Step = time.Duration(stepMs) * time.Millisecond
	}
	return cfg
}
