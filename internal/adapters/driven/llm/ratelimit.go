// Package llm provides shared plumbing for the hosted LLM adapters.
package llm

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRequestRate is the proactive throttle (requests per second).
	DefaultRequestRate = 1.0

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// Throttle combines proactive request pacing with reactive backoff when
// the API signals rate limiting.
type Throttle struct {
	mu      sync.Mutex
	bucket  *rate.Limiter
	retryAt time.Time
}

// NewThrottle creates a throttle pacing requests at the given rate.
// A non-positive rate uses the default.
func NewThrottle(requestsPerSecond float64) *Throttle {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestRate
	}
	return &Throttle{
		bucket: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Wait blocks until it is safe to make a request.
func (t *Throttle) Wait(ctx context.Context) error {
	if err := t.bucket.Wait(ctx); err != nil {
		return err
	}

	t.mu.Lock()
	retryAt := t.retryAt
	t.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}
	return nil
}

// UpdateFromResponse records backoff state from a 429 response.
func (t *Throttle) UpdateFromResponse(resp *http.Response) {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return
	}

	backoff := time.Second
	if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			backoff = time.Duration(seconds) * time.Second
		}
	}

	t.mu.Lock()
	t.retryAt = time.Now().Add(backoff)
	t.mu.Unlock()
}

// RetryAt returns when the next request is allowed after a 429.
func (t *Throttle) RetryAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.retryAt
}
