package mock

import (
	"context"

	"github.com/fwojciec/circulars"
)

var (
	_ circulars.Fetcher       = (*Fetcher)(nil)
	_ circulars.FormSubmitter = (*FormSubmitter)(nil)
	_ circulars.DomainLimiter = (*DomainLimiter)(nil)
	_ circulars.RobotsPolicy  = (*RobotsPolicy)(nil)
)

// Fetcher is a mock implementation of circulars.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// FormSubmitter is a mock implementation of circulars.FormSubmitter.
type FormSubmitter struct {
	SubmitFn func(ctx context.Context, url string, form map[string]string) (string, error)
}

func (s *FormSubmitter) Submit(ctx context.Context, url string, form map[string]string) (string, error) {
	return s.SubmitFn(ctx, url, form)
}

// DomainLimiter is a mock implementation of circulars.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

// RobotsPolicy is a mock implementation of circulars.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn func(ctx context.Context, url string) (bool, error)
}

func (p *RobotsPolicy) Allowed(ctx context.Context, url string) (bool, error) {
	return p.AllowedFn(ctx, url)
}
