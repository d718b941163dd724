package circulars

import (
	"context"
	"time"
)

// ArchivedDetail is a detail result stored for reuse across runs.
type ArchivedDetail struct {
	ID          string        `json:"id"`
	Link        string        `json:"link"`
	ContentHash string        `json:"contentHash"`
	Result      *DetailResult `json:"result"`
	FetchedAt   time.Time     `json:"fetchedAt"`
}

// Validate returns an error if the archived detail contains invalid fields.
func (a *ArchivedDetail) Validate() error {
	if a.Link == "" {
		return Errorf(EINVALID, "archived detail link required")
	}
	if a.Result == nil {
		return Errorf(EINVALID, "archived detail result required")
	}
	return nil
}

// DetailArchive stores detail results keyed by detail page locator.
type DetailArchive interface {
	// FindDetail retrieves the archived result for a link.
	// Returns ENOTFOUND if the link has not been archived.
	FindDetail(ctx context.Context, link string) (*ArchivedDetail, error)

	// SaveDetail inserts or replaces the archived result for its link.
	// ID and FetchedAt are assigned on save.
	SaveDetail(ctx context.Context, detail *ArchivedDetail) error

	// FindDetails retrieves archived results matching the filter,
	// most recently fetched first.
	FindDetails(ctx context.Context, filter ArchiveFilter) ([]*ArchivedDetail, error)
}

// ArchiveFilter represents a filter for FindDetails.
type ArchiveFilter struct {
	// FailedOnly restricts results to archived errors.
	FailedOnly bool `json:"failedOnly"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
