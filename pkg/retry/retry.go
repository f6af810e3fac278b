// Package retry provides a small helper for retrying fallible operations
// with a pluggable backoff schedule and retry predicate.
package retry

import (
	"context"
	"fmt"
	"time"
)

const (
	defaultBaseDelay = time.Second
	defaultMaxDelay  = 30 * time.Second
)

// Backoff returns the delay to wait before the next attempt. The first
// retry passes attempt == 1.
type Backoff func(attempt int) time.Duration

// ShouldRetry decides whether an error is transient.
type ShouldRetry func(error) bool

// Config controls the retry loop. The zero value performs a single attempt.
type Config struct {
	MaxAttempts int
	Backoff     Backoff
	ShouldRetry ShouldRetry
}

func (c *Config) normalize() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 1
	}
	if c.Backoff == nil {
		c.Backoff = ExponentialBackoff(defaultBaseDelay, defaultMaxDelay)
	}
	if c.ShouldRetry == nil {
		c.ShouldRetry = func(error) bool { return true }
	}
}

// ExponentialBackoff doubles the delay on every attempt, starting at base
// and never exceeding max: delay(n) = min(base * 2^(n-1), max).
func ExponentialBackoff(base, max time.Duration) Backoff {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}
		d := base << (attempt - 1)
		if d > max || d <= 0 {
			return max
		}
		return d
	}
}

// Do runs fn until it succeeds, the retry predicate rejects the error, the
// attempt budget is exhausted, or ctx is canceled.
func Do(ctx context.Context, c Config, fn func() error) error {
	_, err := DoWithResult(ctx, c, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult is Do for operations that produce a value.
func DoWithResult[T any](ctx context.Context, c Config, fn func() (T, error)) (T, error) {
	var (
		zero, result T
		err          error
	)

	if err = ctx.Err(); err != nil {
		return zero, err
	}

	c.normalize()
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		result, err = fn()
		if err == nil || !c.ShouldRetry(err) {
			return result, err
		}
		if attempt == c.MaxAttempts {
			break
		}

		timer.Reset(c.Backoff(attempt))
		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-timer.C:
		}
	}

	return zero, err
}
