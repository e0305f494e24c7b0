package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/phonecrawl"
	"golang.org/x/time/rate"
)

var _ phonecrawl.FetchLimiter = (*Limiter)(nil)

// Limiter spaces fetch starts by a minimum interval using a token bucket
// with a burst of 1. One Limiter is shared by every worker of a crawl so
// the interval bounds the aggregate fetch rate.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter that allows one fetch start per interval.
// A zero interval disables limiting.
func NewLimiter(interval time.Duration) *Limiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Limiter{
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Wait blocks until the next fetch may start.
// Spacing is measured start to start, so a slow fetch can itself satisfy
// the interval. Returns an error if the context is canceled before the
// wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
