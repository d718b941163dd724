package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/circulars"
	"github.com/fwojciec/circulars/crawl"
	"github.com/fwojciec/circulars/fs"
	"github.com/fwojciec/circulars/goquery"
	"github.com/fwojciec/circulars/htmltomarkdown"
	circhttp "github.com/fwojciec/circulars/http"
	"github.com/fwojciec/circulars/robotstxt"
	"github.com/fwojciec/circulars/rod"
	circslog "github.com/fwojciec/circulars/slog"
	"github.com/fwojciec/circulars/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the detail archive, if one is configured.
	DB *sqlite.DB

	// Archive overrides the SQLite archive for end-to-end testing.
	Archive circulars.DetailArchive

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.DB = nil
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("rbicirc"),
		kong.Description("Scrape RBI circulars into structured JSON"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{
			"index_url":  circulars.DefaultIndexURL,
			"base_url":   circulars.DefaultBaseURL,
			"user_agent": circhttp.DefaultUserAgent,
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'rbicirc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	markers := circulars.DefaultMarkers()
	markers.BaseURL = cli.BaseURL
	if err := markers.Validate(); err != nil {
		return err
	}
	deps.Index = circslog.NewLoggingIndexParser(goquery.NewIndexParser(markers), deps.Logger)
	deps.Details = circslog.NewLoggingDetailParser(goquery.NewDetailParser(markers), deps.Logger)

	defer m.Close()

	command := kongCtx.Command()
	if strings.HasPrefix(command, "archive") || (command == "scrape" && (cli.DB != "" || m.Archive != nil)) {
		if err := m.openArchive(cli.DB, stderr); err != nil {
			return err
		}
		deps.Archive = m.Archive
	}

	if command == "scrape" {
		scraper, err := m.newScraper(&cli.Scrape, markers, deps)
		if err != nil {
			return err
		}
		deps.Scraper = scraper
	}

	return kongCtx.Run(deps)
}

// openArchive opens the SQLite archive unless one was injected.
func (m *Main) openArchive(path string, stderr io.Writer) error {
	if m.Archive != nil {
		return nil
	}
	if path == "" {
		return circulars.Errorf(circulars.EINVALID, "archive path required: set --db or RBICIRC_DB")
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set RBICIRC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	m.Archive = sqlite.NewArchiveService(m.DB)
	return nil
}

// newScraper wires the transport, extractors and sinks for a scrape run.
func (m *Main) newScraper(c *ScrapeCmd, markers circulars.Markers, deps *Dependencies) (*crawl.Scraper, error) {
	httpFetcher := circhttp.NewFetcher(
		circhttp.WithTimeout(c.Timeout),
		circhttp.WithUserAgent(c.UserAgent),
	)

	var fetcher circulars.Fetcher = httpFetcher
	if c.Browser {
		rodFetcher, err := rod.NewFetcher(
			rod.WithFetchTimeout(c.Timeout),
			rod.WithMaxPages(c.MaxPages),
		)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		deps.Logger.Debug("browser started", "pid", rodFetcher.LauncherPID(), "maxPages", c.MaxPages)
		m.closers = append(m.closers, rodFetcher)
		fetcher = rodFetcher
	}

	s := &crawl.Scraper{
		Fetcher:     circslog.NewLoggingFetcher(fetcher, deps.Logger),
		Submitter:   circslog.NewLoggingSubmitter(httpFetcher, deps.Logger),
		Forms:       goquery.NewFormReader(),
		Index:       deps.Index,
		Details:     deps.Details,
		Archive:     deps.Archive,
		Limiter:     crawl.NewDomainLimiter(c.Delay),
		RetryDelays: retryDelays(c.Retries),
		Logger:      deps.Logger,
		Refresh:     c.Refresh,
	}

	if c.Robots {
		s.Robots = robotstxt.NewPolicy(c.UserAgent)
	}

	if c.MarkdownDir != "" {
		dir := filepath.Clean(c.MarkdownDir)
		s.Pages = fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
		s.Extractor = goquery.NewRegionExtractor(markers)
		s.Converter = htmltomarkdown.NewConverter()
	}

	return s, nil
}

// retryDelays returns n doubling delays starting at one second.
func retryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, max(n, 0))
	for i := range max(n, 0) {
		delays = append(delays, time.Second<<i)
	}
	return delays
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
