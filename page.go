package circulars

import "context"

// Page is a markdown copy of a detail page.
type Page struct {
	URL            string
	Title          string
	CircularNumber string
	Date           string
	Content        string // Markdown
}

// PageStore persists pages to storage with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}

// ScrapeProgress reports progress while detail pages are processed.
type ScrapeProgress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// ScrapeProgressFunc is called after each summary record is handled.
type ScrapeProgressFunc func(ScrapeProgress)
