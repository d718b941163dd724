package main

import (
	"fmt"

	"github.com/fwojciec/circulars"
	"github.com/fwojciec/circulars/fs"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	query := circulars.IndexQuery{URL: c.IndexURL, Year: c.Year, Month: c.Month}
	out := fs.NewResultWriter(c.Output)

	progress := func(p circulars.ScrapeProgress) {
		if p.Error != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", p.URL, circulars.ErrorMessage(p.Error))
		}
	}

	result, summary, err := deps.Scraper.Scrape(deps.Ctx, query, progress)
	if result == nil {
		if err == nil {
			return nil
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", circulars.ErrorMessage(err))
		if werr := out.Write(&circulars.ErrorResult{Error: circulars.ErrorMessage(err)}); werr != nil {
			fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", out.Path(), werr)
		}
		return err
	}

	if werr := out.Write(result); werr != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", werr)
		return werr
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "interrupted: partial result written to %s\n", out.Path())
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scraped %d circulars (%d linked: %d fetched, %d reused, %d failed) to %s\n",
		len(result.Circulars), summary.Linked, summary.Fetched, summary.Reused, summary.Failed, out.Path())
	return nil
}
