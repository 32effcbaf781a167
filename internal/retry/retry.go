// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retry runs an operation with exponential backoff on retryable errors.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrExhausted is wrapped into the error returned when every retry failed.
var ErrExhausted = errors.New("retries exhausted")

// Policy controls how Do retries.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	// Zero means the operation runs once.
	MaxRetries int

	// BaseDelay is the wait before the first retry. The wait doubles on
	// each subsequent retry: BaseDelay, 2*BaseDelay, 4*BaseDelay, ...
	BaseDelay time.Duration

	// Retryable reports whether err should be retried. A nil Retryable
	// retries every error.
	Retryable func(err error) bool

	// OnRetry, when set, is called before each backoff wait.
	OnRetry func(retry int, delay time.Duration, err error)
}

// Backoff returns the wait before the given 0-based retry.
func (p Policy) Backoff(retry int) time.Duration {
	return time.Duration(math.Pow(2, float64(retry))) * p.BaseDelay
}

// Do calls fn until it succeeds, returns a non-retryable error, or the
// policy runs out of retries. If the context is cancelled during a backoff
// wait Do returns ctx.Err(). After exhausting retries the returned error
// wraps both ErrExhausted and the last error from fn.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return zero, err
		}
		if attempt >= p.MaxRetries {
			return zero, fmt.Errorf("%w after %d retries: %w", ErrExhausted, p.MaxRetries, err)
		}

		delay := p.Backoff(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, delay, err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}
}

// Sleep waits for d or until ctx is cancelled, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
