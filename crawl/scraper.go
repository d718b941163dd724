// Package crawl drives a scrape: it fetches the circular index, then visits
// each linked detail page in row order and attaches what it finds.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/fwojciec/circulars"
)

// Scraper fetches an index page and enriches its records with detail pages.
//
// Fetcher, Index and Details are required. Submitter and Forms are needed
// for year or month queries. Archive, Pages, Limiter and Robots are optional;
// Pages also needs Extractor and Converter.
type Scraper struct {
	Fetcher   circulars.Fetcher
	Submitter circulars.FormSubmitter
	Forms     circulars.FormReader
	Index     circulars.IndexParser
	Details   circulars.DetailParser

	Archive   circulars.DetailArchive
	Pages     circulars.PageStore
	Extractor circulars.Extractor
	Converter circulars.Converter
	Limiter   circulars.DomainLimiter
	Robots    circulars.RobotsPolicy

	// RetryDelays are the waits between fetch attempts.
	// Nil means DefaultRetryDelays; empty means no retries.
	RetryDelays []time.Duration

	Logger *slog.Logger

	// Refresh refetches detail pages that are already archived.
	Refresh bool
}

// Summary counts what happened to the records of one run.
type Summary struct {
	// Linked is the number of records with a detail page locator.
	Linked  int
	Fetched int
	Reused  int
	Failed  int
}

// validate checks that the optional collaborators come in working sets.
func (s *Scraper) validate() error {
	if s.Pages != nil && (s.Extractor == nil || s.Converter == nil) {
		return circulars.Errorf(circulars.EINVALID, "page store requires an extractor and a converter")
	}
	return nil
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *Scraper) retryDelays() []time.Duration {
	if s.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return s.RetryDelays
}

// fetch runs do with retries, waiting on the limiter before every attempt.
func (s *Scraper) fetch(ctx context.Context, rawURL string, do FetchFunc) (string, error) {
	polite := func(ctx context.Context, u string) (string, error) {
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx, host(u)); err != nil {
				return "", err
			}
		}
		return do(ctx, u)
	}
	onRetry := func(u string, attempt int, err error) {
		s.logger().Warn("retry", "url", u, "attempt", attempt, "err", err)
	}
	return FetchWithRetryDelays(ctx, rawURL, polite, onRetry, s.retryDelays())
}

// FetchIndex returns the HTML of the index page selected by q.
//
// The default listing is a plain GET. A year query first loads the default
// listing to pick up its hidden form state, then posts it back with the
// year and month fields set.
func (s *Scraper) FetchIndex(ctx context.Context, q circulars.IndexQuery) (string, error) {
	if err := q.Validate(); err != nil {
		return "", err
	}

	html, err := s.fetch(ctx, q.URL, s.Fetcher.Fetch)
	if err != nil {
		return "", fmt.Errorf("fetch index: %w", err)
	}
	if q.Year == 0 {
		return html, nil
	}

	if s.Submitter == nil || s.Forms == nil {
		return "", circulars.Errorf(circulars.EINVALID, "year query requires a form submitter")
	}

	form, err := s.Forms.HiddenFields(html)
	if err != nil {
		return "", fmt.Errorf("read index form: %w", err)
	}
	if form == nil {
		form = make(map[string]string)
	}
	form[circulars.YearField] = strconv.Itoa(q.Year)
	form[circulars.MonthField] = strconv.Itoa(q.Month)

	submit := func(ctx context.Context, u string) (string, error) {
		return s.Submitter.Submit(ctx, u, form)
	}
	html, err = s.fetch(ctx, q.URL, submit)
	if err != nil {
		return "", fmt.Errorf("submit index query: %w", err)
	}
	return html, nil
}

// Scrape fetches and parses the index, then enriches every record.
// An index that cannot be fetched or parsed fails the run; detail failures
// never do.
func (s *Scraper) Scrape(ctx context.Context, q circulars.IndexQuery, progress circulars.ScrapeProgressFunc) (*circulars.IndexResult, *Summary, error) {
	if err := s.validate(); err != nil {
		return nil, nil, err
	}

	html, err := s.FetchIndex(ctx, q)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.Index.ParseIndex(html)
	if err != nil {
		return nil, nil, err
	}

	summary, err := s.Enrich(ctx, result, progress)
	return result, summary, err
}

// Enrich attaches a detail result to every record that has a link,
// one record at a time in row order.
//
// A failed fetch or parse is recorded on that record and the loop moves on.
// Only a cancelled context stops it early; records not yet reached are left
// without details. A page store without an extractor and a converter is
// rejected with EINVALID before any fetch. Pages, if configured, are committed after the loop and
// aborted when it stops early.
func (s *Scraper) Enrich(ctx context.Context, result *circulars.IndexResult, progress circulars.ScrapeProgressFunc) (*Summary, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, rec := range result.Circulars {
		if rec.Link() != "" {
			summary.Linked++
		}
	}

	completed := 0
	for _, rec := range result.Circulars {
		link := rec.Link()
		if link == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			s.abortPages()
			return summary, err
		}

		var err error
		if archived := s.archived(ctx, link); archived != nil {
			rec.Details = archived
			summary.Reused++
		} else {
			var detail *circulars.DetailRecord
			detail, err = s.detail(ctx, link)
			if ctxErr := ctx.Err(); ctxErr != nil {
				s.abortPages()
				return summary, ctxErr
			}
			rec.Details = circulars.NewDetailResult(detail, err)
			summary.Fetched++
			s.archive(ctx, link, rec.Details)
		}

		if !rec.Details.OK() {
			summary.Failed++
			s.logger().Warn("detail failed", "url", link, "err", rec.Details.Error)
		}

		completed++
		s.logger().Debug("detail", "url", link, "completed", completed, "total", summary.Linked, "ok", rec.Details.OK())
		if progress != nil {
			progress(circulars.ScrapeProgress{
				URL:       link,
				Completed: completed,
				Total:     summary.Linked,
				Error:     err,
			})
		}
	}

	if s.Pages != nil {
		if err := s.Pages.Commit(); err != nil {
			return summary, fmt.Errorf("commit pages: %w", err)
		}
	}
	return summary, nil
}

// archived returns the stored result for link when it can be reused.
// Stored failures are always retried.
func (s *Scraper) archived(ctx context.Context, link string) *circulars.DetailResult {
	if s.Archive == nil || s.Refresh {
		return nil
	}

	found, err := s.Archive.FindDetail(ctx, link)
	if err != nil {
		if circulars.ErrorCode(err) != circulars.ENOTFOUND {
			s.logger().Warn("archive lookup", "url", link, "err", err)
		}
		return nil
	}
	if !found.Result.OK() {
		return nil
	}
	return found.Result
}

// detail fetches and parses one detail page, saving its markdown copy
// when a page store is configured.
func (s *Scraper) detail(ctx context.Context, link string) (*circulars.DetailRecord, error) {
	if s.Robots != nil {
		allowed, err := s.Robots.Allowed(ctx, link)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, circulars.Errorf(circulars.EINVALID, "disallowed by robots.txt: %s", link)
		}
	}

	html, err := s.fetch(ctx, link, s.Fetcher.Fetch)
	if err != nil {
		return nil, err
	}

	rec, err := s.Details.ParseDetail(html)
	if err != nil {
		return nil, err
	}

	if s.Pages != nil {
		if err := s.savePage(ctx, link, rec, html); err != nil {
			s.logger().Warn("save page", "url", link, "err", err)
		}
	}
	return rec, nil
}

func (s *Scraper) savePage(ctx context.Context, link string, rec *circulars.DetailRecord, html string) error {
	region, err := s.Extractor.Extract(html)
	if err != nil {
		return err
	}

	markdown, err := s.Converter.Convert(region.ContentHTML)
	if err != nil {
		return err
	}

	return s.Pages.Save(ctx, &circulars.Page{
		URL:            link,
		Title:          rec.Title,
		CircularNumber: rec.CircularNumber,
		Date:           rec.Date,
		Content:        markdown,
	})
}

func (s *Scraper) archive(ctx context.Context, link string, result *circulars.DetailResult) {
	if s.Archive == nil {
		return
	}
	if err := s.Archive.SaveDetail(ctx, &circulars.ArchivedDetail{Link: link, Result: result}); err != nil {
		s.logger().Warn("archive save", "url", link, "err", err)
	}
}

func (s *Scraper) abortPages() {
	if s.Pages == nil {
		return
	}
	if err := s.Pages.Abort(); err != nil {
		s.logger().Warn("abort pages", "err", err)
	}
}

// host returns the host of rawURL, or rawURL itself when it does not parse.
func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
