package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/circulars"
)

// Run executes the archive list command.
func (c *ArchiveListCmd) Run(deps *Dependencies) error {
	details, err := deps.Archive.FindDetails(deps.Ctx, circulars.ArchiveFilter{
		FailedOnly: c.Failed,
		Offset:     c.Offset,
		Limit:      c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", circulars.ErrorMessage(err))
		return err
	}

	if len(details) == 0 {
		fmt.Fprintln(deps.Stdout, "No archived circulars. Use 'rbicirc scrape --db' to fill the archive.")
		return nil
	}

	for _, d := range details {
		status, label := "ok", ""
		if d.Result.OK() {
			label = d.Result.Circular.CircularNumber
		} else {
			status = "failed"
			label = d.Result.Error
		}
		fmt.Fprintf(deps.Stdout, "%s  %-6s  %s  %s\n", d.FetchedAt.Format(time.DateTime), status, d.Link, label)
	}

	return nil
}
