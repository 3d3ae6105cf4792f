// Package retry makes the pipeline's retry behaviour an explicit setting.
// The zero-retry default (one attempt) is the service's normal mode.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// None performs a single attempt.
func None() Policy {
	return Policy{MaxAttempts: 1}
}

// Do runs op until it succeeds, returns an error for which retryable is false,
// the attempts are exhausted or ctx is done. The error from the last attempt
// is returned, also when ctx ends the loop.
func (p Policy) Do(ctx context.Context, retryable func(error) bool, op func(attempt int) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	expo := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		expo.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		expo.MaxInterval = p.MaxInterval
	}
	expo.MaxElapsedTime = 0
	expo.Reset()

	b := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(attempts-1)), ctx)

	attempt := 0
	var lastErr error
	err := backoff.Retry(func() error {
		attempt++
		lastErr = op(attempt)
		if lastErr != nil && !retryable(lastErr) {
			return backoff.Permanent(lastErr)
		}
		return lastErr
	}, b)
	if err != nil && lastErr != nil {
		// backoff reports ctx.Err() once the context is done; callers
		// classify on the operation's own error.
		return lastErr
	}
	return err
}
