package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/circulars"
	"github.com/fwojciec/circulars/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Index   circulars.IndexParser
	Details circulars.DetailParser
	Archive circulars.DetailArchive
	Scraper *crawl.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" env:"RBICIRC_VERBOSE" help:"Log debug output"`
	BaseURL string `name:"base-url" default:"${base_url}" env:"RBICIRC_BASE_URL" help:"Base URL for relative circular links"`
	DB      string `name:"db" env:"RBICIRC_DB" help:"SQLite archive of fetched circulars"`

	Scrape  ScrapeCmd  `cmd:"" help:"Scrape the circular index and every linked circular"`
	Parse   ParseCmd   `cmd:"" help:"Parse a saved page and print JSON"`
	Archive ArchiveCmd `cmd:"" help:"Inspect the circular archive"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	IndexURL    string        `name:"index-url" default:"${index_url}" env:"RBICIRC_INDEX_URL" help:"Circular index page"`
	Year        int           `env:"RBICIRC_YEAR" help:"Index year (default: current listing)"`
	Month       int           `env:"RBICIRC_MONTH" help:"Index month, 1-12 (default: whole year)"`
	Output      string        `short:"o" default:"rbi_circulars.json" env:"RBICIRC_OUTPUT" help:"JSON output file"`
	MarkdownDir string        `name:"markdown-dir" env:"RBICIRC_MARKDOWN_DIR" help:"Directory for markdown copies of circulars"`
	Refresh     bool          `env:"RBICIRC_REFRESH" help:"Refetch circulars already in the archive"`
	Browser     bool          `env:"RBICIRC_BROWSER" help:"Fetch pages with a headless browser"`
	MaxPages    int64         `name:"browser-max-pages" default:"75" env:"RBICIRC_BROWSER_MAX_PAGES" help:"Pages served before the browser is relaunched"`
	Robots      bool          `env:"RBICIRC_ROBOTS" help:"Skip circulars disallowed by robots.txt"`
	Timeout     time.Duration `short:"t" default:"10s" env:"RBICIRC_TIMEOUT" help:"Fetch timeout per page"`
	Delay       time.Duration `default:"1s" env:"RBICIRC_DELAY" help:"Minimum delay between requests"`
	Retries     int           `default:"3" env:"RBICIRC_RETRIES" help:"Retries per page"`
	UserAgent   string        `name:"user-agent" default:"${user_agent}" env:"RBICIRC_USER_AGENT" help:"User-Agent header for HTTP requests"`
}

// ParseCmd is the "parse" subcommand group.
type ParseCmd struct {
	Index  ParseIndexCmd  `cmd:"" help:"Parse a saved index page"`
	Detail ParseDetailCmd `cmd:"" help:"Parse a saved circular page"`
}

// ParseIndexCmd is the "parse index" subcommand.
type ParseIndexCmd struct {
	File string `arg:"" type:"existingfile" help:"HTML file"`
}

// ParseDetailCmd is the "parse detail" subcommand.
type ParseDetailCmd struct {
	File string `arg:"" type:"existingfile" help:"HTML file"`
}

// ArchiveCmd is the "archive" subcommand group.
type ArchiveCmd struct {
	List ArchiveListCmd `cmd:"" help:"List archived circulars"`
}

// ArchiveListCmd is the "archive list" subcommand.
type ArchiveListCmd struct {
	Failed bool `help:"Only show failed circulars"`
	Limit  int  `short:"n" default:"50" help:"Maximum entries (0 for all)"`
	Offset int  `help:"Entries to skip"`
}
