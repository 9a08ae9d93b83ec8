package http

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryConfig controls the exponential-backoff retry loop.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

// DefaultRetryConfig returns the retry settings used when nothing is
// configured.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 2 * time.Second,
		MaxBackoff:     32 * time.Second,
		Multiplier:     2.0,
	}
}

// Backoff computes the wait before retry attempt n (0-based):
// min(initial * multiplier^n, max) with ±25% jitter.
func Backoff(attempt int, config RetryConfig) time.Duration {
	wait := float64(config.InitialBackoff) * math.Pow(config.Multiplier, float64(attempt))
	if wait > float64(config.MaxBackoff) {
		wait = float64(config.MaxBackoff)
	}

	jitter := 0.25 * wait
	wait += rand.Float64()*2*jitter - jitter
	if wait > float64(config.MaxBackoff) {
		wait = float64(config.MaxBackoff)
	}
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

// ShouldRetry reports whether err is worth retrying. Only typed *Error values
// marked retryable qualify; everything else fails immediately.
func ShouldRetry(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.IsRetryable()
	}
	return false
}

// Operation is a unit of work driven by RetryWithBackoff.
type Operation func(ctx context.Context) error

// RetryWithBackoff runs operation until it succeeds, returns a non-retryable
// error, exhausts MaxRetries, or the context is cancelled.
func RetryWithBackoff(ctx context.Context, operation Operation, config RetryConfig) error {
	var lastErr error

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := operation(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !ShouldRetry(err) || attempt >= config.MaxRetries {
			return err
		}

		select {
		case <-time.After(Backoff(attempt, config)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}
