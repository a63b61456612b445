// Package llm - retry.go provides an opt-in resilience wrapper for provider calls.
package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"
)

const (
	// DefaultMaxAttempts bounds the total number of tries, including the first.
	DefaultMaxAttempts = 3
	// initialBackoff is the wait before the second attempt; it doubles each retry.
	initialBackoff = 2 * time.Second
)

// RetryableStatus reports whether an HTTP status code indicates a
// transient provider condition worth retrying: 503 (overloaded) or
// 429 (rate-limited). Everything else propagates immediately.
func RetryableStatus(code int) bool {
	return code == http.StatusServiceUnavailable || code == http.StatusTooManyRequests
}

// retryable inspects an error for a retryable provider status.
func retryable(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return RetryableStatus(apiErr.Code)
	}
	return false
}

// CallWithRetry invokes fn up to maxAttempts times, backing off
// exponentially (2s, 4s, 8s) between attempts. Only transient provider
// errors are retried; any other error, or exhaustion of attempts,
// returns the last error unchanged.
//
// Call sites opt in explicitly. The interview turn controller does not
// use this wrapper: a conversational turn issues exactly one billed
// call and surfaces failures to the caller.
func CallWithRetry[T any](ctx context.Context, maxAttempts int, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	backoff := initialBackoff
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retryable(err) || attempt == maxAttempts {
			return zero, lastErr
		}

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
		backoff *= 2
	}

	return zero, lastErr
}
