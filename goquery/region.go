package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/circulars"
)

// Ensure RegionExtractor implements circulars.Extractor at compile time.
var _ circulars.Extractor = (*RegionExtractor)(nil)

// RegionExtractor isolates the main region of a detail page so it can be
// archived without the surrounding site chrome.
type RegionExtractor struct {
	markers circulars.Markers
}

// NewRegionExtractor creates a new RegionExtractor using the given markers.
func NewRegionExtractor(markers circulars.Markers) *RegionExtractor {
	return &RegionExtractor{markers: markers}
}

// Extract returns the content of the first marked table's own cells. The
// table is a page layout device, so its rows and cells are dropped and only
// their inner HTML is kept, in document order. Tables nested in the cells
// are kept intact.
func (e *RegionExtractor) Extract(rawHTML string) (*circulars.ExtractResult, error) {
	doc, err := newDocument(rawHTML)
	if err != nil {
		return nil, err
	}

	region := doc.Find(e.markers.Table).First()
	if region.Length() == 0 {
		return nil, circulars.Errorf(circulars.ENOTFOUND, "Table not found at the specified path")
	}

	var b strings.Builder
	var renderErr error
	region.Children().ChildrenFiltered("tr").ChildrenFiltered("td, th").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		inner, err := cell.Html()
		if err != nil {
			renderErr = err
			return false
		}
		b.WriteString(inner)
		b.WriteByte('\n')
		return true
	})
	if renderErr != nil {
		return nil, circulars.Errorf(circulars.EINVALID, "failed to render region: %v", renderErr)
	}

	return &circulars.ExtractResult{
		Title:       text(region.Find(e.markers.HeaderCell + " b")),
		ContentHTML: b.String(),
	}, nil
}
