package circulars

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the HTML served at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// FormSubmitter replays a page's form with chosen field values.
// Implementations keep the session cookies issued by earlier requests.
type FormSubmitter interface {
	// Submit posts form to url as application/x-www-form-urlencoded
	// and returns the HTML of the response.
	Submit(ctx context.Context, url string, form map[string]string) (html string, err error)
}

// Form fields the index page reads its listing period from on postback.
// A month of 0 selects the whole year.
const (
	YearField  = "hdnYear"
	MonthField = "hdnMonth"
)

// IndexQuery selects the index page to scrape.
type IndexQuery struct {
	// URL of the index page.
	URL string

	// Year restricts the listing to one year. Zero fetches the default listing.
	Year int

	// Month restricts the listing to one month of Year. Zero means all months.
	Month int
}

// Validate returns an error if the query contains invalid fields.
func (q IndexQuery) Validate() error {
	if q.URL == "" {
		return Errorf(EINVALID, "index URL required")
	}
	if q.Month < 0 || q.Month > 12 {
		return Errorf(EINVALID, "month must be between 0 and 12, got %d", q.Month)
	}
	if q.Month != 0 && q.Year == 0 {
		return Errorf(EINVALID, "month requires a year")
	}
	if q.Year < 0 {
		return Errorf(EINVALID, "invalid year %d", q.Year)
	}
	return nil
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// RobotsPolicy reports whether the site's robots.txt permits fetching a URL.
type RobotsPolicy interface {
	Allowed(ctx context.Context, url string) (bool, error)
}
