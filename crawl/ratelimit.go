package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/circulars"
	"golang.org/x/time/rate"
)

var _ circulars.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces requests to each host at least one interval apart.
// Hosts are limited independently; the first request to a host never waits.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing one request per interval
// to each host. A zero or negative interval disables limiting.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(interval),
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiter(domain).Wait(ctx)
}

func (d *DomainLimiter) limiter(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.limiters[domain]
	if !ok {
		l = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = l
	}
	return l
}
