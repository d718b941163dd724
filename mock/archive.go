package mock

import (
	"context"

	"github.com/fwojciec/circulars"
)

var _ circulars.DetailArchive = (*DetailArchive)(nil)

// DetailArchive is a mock implementation of circulars.DetailArchive.
type DetailArchive struct {
	FindDetailFn  func(ctx context.Context, link string) (*circulars.ArchivedDetail, error)
	SaveDetailFn  func(ctx context.Context, detail *circulars.ArchivedDetail) error
	FindDetailsFn func(ctx context.Context, filter circulars.ArchiveFilter) ([]*circulars.ArchivedDetail, error)
}

func (a *DetailArchive) FindDetail(ctx context.Context, link string) (*circulars.ArchivedDetail, error) {
	return a.FindDetailFn(ctx, link)
}

func (a *DetailArchive) SaveDetail(ctx context.Context, detail *circulars.ArchivedDetail) error {
	return a.SaveDetailFn(ctx, detail)
}

func (a *DetailArchive) FindDetails(ctx context.Context, filter circulars.ArchiveFilter) ([]*circulars.ArchivedDetail, error) {
	return a.FindDetailsFn(ctx, filter)
}
