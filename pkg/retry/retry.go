// Package retry re-runs operations that fail with transient errors, such as
// the initial ping against a Redis or MongoDB backend that is still starting.
package retry

import (
	"context"
	"errors"
	"time"
)

// TransientError marks an error as worth another attempt. Errors not wrapped
// in it end the loop immediately.
type TransientError struct{ Err error }

func (e *TransientError) Error() string { return e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err so [Do] will retry it. A nil err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// Do calls fn up to attempts times, doubling delay after each transient
// failure. It returns the last error, unwrapped from [TransientError], or
// ctx.Err() if the context ends while waiting.
func Do(ctx context.Context, attempts int, delay time.Duration, fn func(ctx context.Context) error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		var te *TransientError
		if !errors.As(err, &te) {
			return err
		}
		lastErr = te.Err

		if i < attempts-1 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
				delay *= 2
			}
		}
	}
	return lastErr
}

// DialTimeout bounds a single attempt made by [Connect].
const DialTimeout = 2 * time.Second

// Connect retries a backend dial three times starting at 100ms. Every
// failure from dial is treated as transient.
func Connect(ctx context.Context, dial func(ctx context.Context) error) error {
	return Do(ctx, 3, 100*time.Millisecond, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, DialTimeout)
		defer cancel()
		return Transient(dial(attemptCtx))
	})
}
