package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/circulars"
)

// Ensure IndexParser implements circulars.IndexParser at compile time.
var _ circulars.IndexParser = (*IndexParser)(nil)

// IndexParser extracts summary records from the circular index table.
//
// Row 0 of the table is a title banner, row 1 carries the <th> headers and
// every later row is data. Cells pair with headers by position.
type IndexParser struct {
	markers circulars.Markers
}

// NewIndexParser creates a new IndexParser using the given markers.
func NewIndexParser(markers circulars.Markers) *IndexParser {
	return &IndexParser{markers: markers}
}

// ParseIndex parses an index page.
func (p *IndexParser) ParseIndex(rawHTML string) (*circulars.IndexResult, error) {
	base, err := url.Parse(p.markers.BaseURL)
	if err != nil {
		return nil, circulars.Errorf(circulars.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := newDocument(rawHTML)
	if err != nil {
		return nil, err
	}

	table := doc.Find(p.markers.Table).First()
	if table.Length() == 0 {
		return nil, circulars.Errorf(circulars.ENOTFOUND, "Table not found")
	}

	rows := table.Find("tr")
	result := &circulars.IndexResult{
		Title:     text(rows.First()),
		Headers:   []string{},
		Circulars: []*circulars.SummaryRecord{},
	}

	rows.Eq(1).Find("th").Each(func(_ int, th *goquery.Selection) {
		result.Headers = append(result.Headers, strings.TrimSpace(th.Text()))
	})

	for i := 2; i < rows.Length(); i++ {
		var cells []string
		var link string
		rows.Eq(i).Find("td").Each(func(j int, td *goquery.Selection) {
			if j == 0 {
				if href, ok := td.Find("a").First().Attr("href"); ok && href != "" {
					link = resolveURL(p.markers.BaseURL, base, href)
				}
			}
			cells = append(cells, circulars.NormalizeText(td.Text()))
		})
		result.Circulars = append(result.Circulars, circulars.IndexRow(result.Headers, cells, link))
	}

	return result, nil
}

// resolveURL turns an index href into a detail page locator. Absolute
// hrefs are kept and root-relative ones resolve against the base host.
// Anything else is appended to rawBase verbatim, unescaped.
func resolveURL(rawBase string, base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	ref, err := url.Parse(href)
	switch {
	case err != nil:
		return rawBase + href
	case ref.IsAbs():
		return href
	case strings.HasPrefix(href, "/"):
		return base.ResolveReference(ref).String()
	default:
		return rawBase + href
	}
}
