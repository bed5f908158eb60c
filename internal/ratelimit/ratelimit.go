// Package ratelimit paces calls to external quote providers.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval spaces fetches to fit a 5-calls-per-minute provider
// budget.
const DefaultInterval = 12 * time.Second

// Limiter gates calls to an external provider. The pipeline waits on it
// before every fetch.
type Limiter interface {
	// Wait blocks until the next call is allowed or the context is done.
	Wait(ctx context.Context) error
}

// IntervalLimiter enforces a fixed spacing between consecutive calls. The
// first call passes immediately; each later call waits out the remainder of
// the interval since the previous one. A zero interval never waits.
type IntervalLimiter struct {
	limiter *rate.Limiter
}

// NewIntervalLimiter creates a fixed-interval limiter.
func NewIntervalLimiter(interval time.Duration) *IntervalLimiter {
	if interval <= 0 {
		return &IntervalLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}

	return &IntervalLimiter{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the interval since the previous call has elapsed.
func (l *IntervalLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// NopLimiter never waits. Tests use it to run the pipeline at full speed.
type NopLimiter struct{}

// NewNopLimiter creates a limiter that never waits.
func NewNopLimiter() *NopLimiter {
	return &NopLimiter{}
}

// Wait returns immediately.
func (NopLimiter) Wait(_ context.Context) error {
	return nil
}
