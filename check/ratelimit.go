package check

import (
	"context"
	"sync"

	"github.com/fwojciec/javadex"
	"golang.org/x/time/rate"
)

var _ javadex.HostLimiter = (*HostLimiter)(nil)

// HostLimiter provides per-host rate limiting using token buckets.
// Requests to different hosts proceed independently.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second to
// each host with a burst of 1. A non-positive rps disables limiting.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	if h.rps <= 0 {
		return ctx.Err()
	}

	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(h.rps), 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}
