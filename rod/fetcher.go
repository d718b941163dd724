// Package rod provides a headless Chrome implementation of circulars.Fetcher
// for mirrors of the circular pages that only render with JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/circulars"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

// Ensure Fetcher implements circulars.Fetcher at compile time.
var _ circulars.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
//
// Chrome's memory grows with every page it serves, so the browser is
// relaunched after a fixed number of pages. Fetcher is safe for concurrent
// use by multiple goroutines.
type Fetcher struct {
	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount atomic.Int64
	closed    atomic.Bool

	timeout  time.Duration
	maxPages int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page load timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets the number of pages served before the browser is relaunched.
// Values below one keep DefaultMaxPages.
func WithMaxPages(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxPages = n
		}
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.launch(); err != nil {
		return nil, err
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", circulars.Errorf(circulars.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.currentBrowser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	f.pageCount.Add(1)

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdown()
}

// LauncherPID returns the process ID of the browser launcher, or 0 once closed.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launcher == nil {
		return 0
	}
	return f.launcher.PID()
}

// currentBrowser returns the live browser, relaunching it first when the
// page budget is spent. A failed relaunch keeps the old browser.
func (f *Fetcher) currentBrowser() *rod.Browser {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pageCount.Load() < f.maxPages {
		return f.browser
	}

	oldBrowser, oldLauncher := f.browser, f.launcher
	if err := f.launch(); err != nil {
		f.browser, f.launcher = oldBrowser, oldLauncher
		return f.browser
	}
	_ = oldBrowser.Close()
	oldLauncher.Kill()
	f.pageCount.Store(0)
	return f.browser
}

// launch starts a browser with flags that keep background pages from
// being throttled. Must be called with mu held or before f is shared.
func (f *Fetcher) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return nil
}

// shutdown must be called with mu held.
func (f *Fetcher) shutdown() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}
