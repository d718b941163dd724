// Package slog provides log/slog decorators for the circulars services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/circulars"
)

var (
	_ circulars.Fetcher       = (*LoggingFetcher)(nil)
	_ circulars.FormSubmitter = (*LoggingSubmitter)(nil)
)

// level returns Warn for a failed call and ok otherwise.
func level(err error, ok slog.Level) slog.Level {
	if err != nil {
		return slog.LevelWarn
	}
	return ok
}

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   circulars.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next circulars.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Log(ctx, level(err, slog.LevelInfo), "fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingSubmitter wraps a FormSubmitter with request logging.
type LoggingSubmitter struct {
	next   circulars.FormSubmitter
	logger *slog.Logger
}

// NewLoggingSubmitter creates a new LoggingSubmitter.
func NewLoggingSubmitter(next circulars.FormSubmitter, logger *slog.Logger) *LoggingSubmitter {
	return &LoggingSubmitter{next: next, logger: logger}
}

// Submit logs the postback and delegates to the wrapped submitter.
// Field values are not logged; view state blobs run to kilobytes.
func (s *LoggingSubmitter) Submit(ctx context.Context, url string, form map[string]string) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Log(ctx, level(err, slog.LevelInfo), "submit",
			"url", url,
			"fields", len(form),
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Submit(ctx, url, form)
}
