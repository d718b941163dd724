// Package robotstxt implements circulars.RobotsPolicy on top of
// github.com/temoto/robotstxt, caching each host's rules for a while.
package robotstxt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/circulars"
	gocache "github.com/patrickmn/go-cache"
	"github.com/temoto/robotstxt"
)

// Ensure Policy implements circulars.RobotsPolicy at compile time.
var _ circulars.RobotsPolicy = (*Policy)(nil)

// DefaultTTL is how long a host's rules are reused before refetching.
const DefaultTTL = time.Hour

// maxRobotsSize caps how much of a robots.txt body is read.
const maxRobotsSize = 512 << 10

// Policy checks URLs against the robots.txt of their host.
//
// A robots.txt that cannot be fetched allows everything. Status codes are
// interpreted by robotstxt.FromStatusAndBytes: 4xx allows all, 5xx denies all.
type Policy struct {
	client    *http.Client
	userAgent string
	cache     *gocache.Cache
}

// Option configures a Policy.
type Option func(*Policy)

// WithTTL sets how long fetched rules are cached.
func WithTTL(d time.Duration) Option {
	return func(p *Policy) {
		p.cache = gocache.New(d, 2*d)
	}
}

// WithHTTPClient sets the client used to fetch robots.txt.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Policy) {
		p.client = c
	}
}

// NewPolicy creates a Policy matching rules against userAgent.
func NewPolicy(userAgent string, opts ...Option) *Policy {
	p := &Policy{
		client:    &http.Client{Timeout: 10 * time.Second},
		userAgent: userAgent,
		cache:     gocache.New(DefaultTTL, 2*DefaultTTL),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Allowed reports whether rawURL may be fetched.
func (p *Policy) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false, circulars.Errorf(circulars.EINVALID, "invalid URL: %s", rawURL)
	}

	data, err := p.rules(ctx, u)
	if err != nil {
		return false, err
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, Agent(p.userAgent)), nil
}

// rules returns the cached rules for u's origin, fetching them on a miss.
func (p *Policy) rules(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	origin := u.Scheme + "://" + u.Host
	if cached, ok := p.cache.Get(origin); ok {
		return cached.(*robotstxt.RobotsData), nil
	}

	data, err := p.fetch(ctx, origin+"/robots.txt")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		data, _ = robotstxt.FromStatusAndBytes(http.StatusNotFound, nil)
	}

	p.cache.SetDefault(origin, data)
	return data, nil
}

func (p *Policy) fetch(ctx context.Context, robotsURL string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		return nil, err
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", robotsURL, err)
	}
	return data, nil
}

// Agent reduces a User-Agent header to the product token robots.txt
// groups are matched against.
func Agent(userAgent string) string {
	fields := strings.Fields(userAgent)
	if len(fields) == 0 {
		return userAgent
	}
	product, _, _ := strings.Cut(fields[0], "/")
	return product
}
