package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// GitHubRateLimit is the hourly quota of an authenticated token, assumed
// until the first response says otherwise.
const GitHubRateLimit = 5000

// QuotaReserve is the most requests held back: below the reserve, Wait
// sleeps until the quota window resets. Smaller windows hold back a tenth
// of their limit, so the anonymous quota of 60 keeps a reserve of 6.
const QuotaReserve = 100

// Rate limit response headers.
const (
	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"
	HeaderRateReset     = "X-RateLimit-Reset"
)

// quota is the server's view of the rate limit window.
type quota struct {
	limit     int
	remaining int
	reset     time.Time
}

// reserve returns how many requests of the window are held back.
func (q quota) reserve() int {
	return min(QuotaReserve, q.limit/10)
}

// exhausted reports whether a request now would eat into the reserve of a
// window that has not reset yet.
func (q quota) exhausted(now time.Time) bool {
	return q.remaining < q.reserve() && now.Before(q.reset)
}

// RateLimiter delays requests that have not been sent yet. It combines an
// optional client-side token bucket with the quota GitHub reports in its
// response headers. It never retries a request.
type RateLimiter struct {
	bucket *rate.Limiter

	mu    sync.Mutex
	quota quota
}

// NewRateLimiter creates a rate limiter. A non-positive perSecond disables
// the token bucket; waiting on an exhausted quota stays active.
func NewRateLimiter(perSecond float64) *RateLimiter {
	every := rate.Inf
	if perSecond > 0 {
		every = rate.Limit(perSecond)
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(every, 1),
		quota:  quota{limit: GitHubRateLimit, remaining: GitHubRateLimit},
	}
}

// Wait blocks until a request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	q := r.snapshot()
	if !q.exhausted(time.Now()) {
		return nil
	}

	timer := time.NewTimer(time.Until(q.reset))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// UpdateFromResponse records the quota headers of resp. Missing or
// malformed headers leave the previous value in place.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if n, ok := headerInt(resp.Header, HeaderRateLimit); ok {
		r.quota.limit = int(n)
	}
	if n, ok := headerInt(resp.Header, HeaderRateRemaining); ok {
		r.quota.remaining = int(n)
	}
	if n, ok := headerInt(resp.Header, HeaderRateReset); ok {
		r.quota.reset = time.Unix(n, 0)
	}
}

func headerInt(h http.Header, key string) (int64, bool) {
	v := h.Get(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	return n, err == nil
}

func (r *RateLimiter) snapshot() quota {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quota
}

// Remaining returns the requests left in the current window.
func (r *RateLimiter) Remaining() int { return r.snapshot().remaining }

// Limit returns the size of the quota window.
func (r *RateLimiter) Limit() int { return r.snapshot().limit }

// ResetTime returns when the current window resets. Zero until a response
// carried the header.
func (r *RateLimiter) ResetTime() time.Time { return r.snapshot().reset }
