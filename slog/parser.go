package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/circulars"
)

var (
	_ circulars.IndexParser  = (*LoggingIndexParser)(nil)
	_ circulars.DetailParser = (*LoggingDetailParser)(nil)
)

// LoggingIndexParser wraps an IndexParser with debug logging.
// Failures are logged at Warn.
type LoggingIndexParser struct {
	next   circulars.IndexParser
	logger *slog.Logger
}

// NewLoggingIndexParser creates a new LoggingIndexParser.
func NewLoggingIndexParser(next circulars.IndexParser, logger *slog.Logger) *LoggingIndexParser {
	return &LoggingIndexParser{next: next, logger: logger}
}

// ParseIndex delegates to the wrapped parser and logs the row count.
func (p *LoggingIndexParser) ParseIndex(html string) (result *circulars.IndexResult, err error) {
	defer func(begin time.Time) {
		var rows, headers int
		if result != nil {
			rows, headers = len(result.Circulars), len(result.Headers)
		}
		p.logger.Log(context.Background(), level(err, slog.LevelDebug), "parse index",
			"bytes", len(html),
			"headers", headers,
			"rows", rows,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseIndex(html)
}

// LoggingDetailParser wraps a DetailParser with debug logging.
type LoggingDetailParser struct {
	next   circulars.DetailParser
	logger *slog.Logger
}

// NewLoggingDetailParser creates a new LoggingDetailParser.
func NewLoggingDetailParser(next circulars.DetailParser, logger *slog.Logger) *LoggingDetailParser {
	return &LoggingDetailParser{next: next, logger: logger}
}

// ParseDetail delegates to the wrapped parser and logs what was extracted.
func (p *LoggingDetailParser) ParseDetail(html string) (rec *circulars.DetailRecord, err error) {
	defer func(begin time.Time) {
		var number string
		var sections, tables int
		if rec != nil {
			number = rec.CircularNumber
			sections, tables = len(rec.ContentSections), len(rec.Tables)
		}
		p.logger.Log(context.Background(), level(err, slog.LevelDebug), "parse detail",
			"bytes", len(html),
			"circular", number,
			"sections", sections,
			"tables", tables,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseDetail(html)
}
