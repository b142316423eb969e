package notion

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRate is the average request rate Notion allows per integration.
	DefaultRate = 3.0

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"

	// DefaultRetryAfter is used when a 429 carries no usable Retry-After.
	DefaultRetryAfter = time.Second
)

// RateLimiter combines proactive token-bucket throttling with the reactive
// back-off Notion asks for on 429 responses.
type RateLimiter struct {
	mu         sync.Mutex
	bucket     *rate.Limiter
	blockUntil time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second.
func NewRateLimiter(rps float64) *RateLimiter {
	if rps <= 0 {
		rps = DefaultRate
	}
	return &RateLimiter{bucket: rate.NewLimiter(rate.Limit(rps), 1)}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	until := r.blockUntil
	r.mu.Unlock()

	if d := time.Until(until); d > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
	return nil
}

// Observe records a rate-limited response and returns the delay Notion asked
// for. ok is false for responses that were not rate limited.
func (r *RateLimiter) Observe(resp *http.Response) (delay time.Duration, ok bool) {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return 0, false
	}
	delay = DefaultRetryAfter
	if v := resp.Header.Get(HeaderRetryAfter); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
			delay = time.Duration(seconds) * time.Second
		}
	}

	r.mu.Lock()
	if until := time.Now().Add(delay); until.After(r.blockUntil) {
		r.blockUntil = until
	}
	r.mu.Unlock()
	return delay, true
}
