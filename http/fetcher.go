// Package http provides an HTTP-based implementation of circulars.Fetcher
// and circulars.FormSubmitter for the server-rendered circular pages.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/circulars"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the scraper to the origin server.
const DefaultUserAgent = "circulars/1.0 (+https://github.com/fwojciec/circulars)"

// Ensure Fetcher implements the circulars interfaces at compile time.
var (
	_ circulars.Fetcher       = (*Fetcher)(nil)
	_ circulars.FormSubmitter = (*Fetcher)(nil)
)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript. It keeps the cookies
// set by earlier responses so that a form postback belongs to the same
// session as the page it was read from.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	// cookiejar.New only fails on a non-nil options value.
	jar, _ := cookiejar.New(nil)

	f.client = &http.Client{
		Timeout: f.timeout,
		Jar:     jar,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	return f.do(req)
}

// Submit posts form to the given URL and returns the response HTML.
func (f *Fetcher) Submit(ctx context.Context, target string, form map[string]string) (string, error) {
	values := make(url.Values, len(form))
	for k, v := range form {
		values.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(values.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(req)
}

func (f *Fetcher) do(req *http.Request) (string, error) {
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp.StatusCode, req.URL.String())
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return decode(body, resp.Header.Get("Content-Type"))
}

// statusError describes a non-200 response. Client errors that a retry
// cannot fix carry an application code; the rest stay internal.
func statusError(status int, url string) error {
	msg := fmt.Sprintf("HTTP %d for %s", status, url)
	switch {
	case status == http.StatusNotFound || status == http.StatusGone:
		return circulars.Errorf(circulars.ENOTFOUND, "%s", msg)
	case status == http.StatusRequestTimeout || status == http.StatusTooManyRequests:
		return errors.New(msg)
	case status >= 400 && status < 500:
		return circulars.Errorf(circulars.EINVALID, "%s", msg)
	default:
		return errors.New(msg)
	}
}

// decode converts body to UTF-8. The declared charset (header, BOM or meta
// tag) is used when present; otherwise the encoding is guessed from the bytes.
func decode(body []byte, contentType string) (string, error) {
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if !certain {
		if guess, err := chardet.NewHtmlDetector().DetectBest(body); err == nil && guess != nil {
			if e, n := charset.Lookup(guess.Charset); e != nil {
				enc, name = e, n
			}
		}
	}
	if name == "utf-8" {
		return string(body), nil
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("decode %s body: %w", name, err)
	}
	return string(decoded), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
