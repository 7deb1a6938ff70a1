package services

import (
	"fmt"
	"time"
)

// retry runs fn up to attempts times with linear backoff. Used for store
// writes only: those are idempotent upserts over a fixed key, so an
// at-least-once retry cannot double-apply. Model calls are never retried.
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		wait := time.Duration(500*(i+1)) * time.Millisecond
		time.Sleep(wait)
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
