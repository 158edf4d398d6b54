package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/prospect"
	"golang.org/x/time/rate"
)

var _ prospect.DomainLimiter = (*DomainLimiter)(nil)

// DefaultQueryPause is the pause enforced between successive queries to
// one search engine.
const DefaultQueryPause = 2 * time.Second

// DomainLimiter provides per-key rate limiting using token buckets.
// Each key (a hostname, or a search engine name) gets its own limiter, so
// requests to different keys proceed concurrently while requests for one
// key are spaced out.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing one request per
// interval for each key, with no bursting. A non-positive interval
// disables limiting.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request for key.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, key string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
