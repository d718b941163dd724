package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/circulars"
	"golang.org/x/net/html"
)

// Ensure DetailParser implements circulars.DetailParser at compile time.
var _ circulars.DetailParser = (*DetailParser)(nil)

// DetailParser extracts a detail record from a circular's page.
//
// Everything is read from the main region: the first table matching the
// table marker. Tables nested inside it are extracted separately.
type DetailParser struct {
	markers circulars.Markers
}

// NewDetailParser creates a new DetailParser using the given markers.
func NewDetailParser(markers circulars.Markers) *DetailParser {
	return &DetailParser{markers: markers}
}

// ParseDetail parses a detail page.
func (p *DetailParser) ParseDetail(rawHTML string) (*circulars.DetailRecord, error) {
	doc, err := newDocument(rawHTML)
	if err != nil {
		return nil, err
	}

	region := doc.Find(p.markers.Table).First()
	if region.Length() == 0 {
		return nil, circulars.Errorf(circulars.ENOTFOUND, "Table not found at the specified path")
	}

	rec := &circulars.DetailRecord{
		Title:           text(region.Find(p.markers.HeaderCell + " b")),
		Date:            text(region.Find(p.markers.DateParagraph)),
		MeantFor:        p.meantFor(region),
		PDFLink:         p.pdfLink(region),
		ContentSections: p.sections(region),
		Tables:          p.tables(region),
	}
	rec.CircularNumber, rec.ReferenceNumber = p.numbers(region)

	return rec, nil
}

// pdfLink returns the href of the first anchor opening in a new window.
func (p *DetailParser) pdfLink(region *goquery.Selection) *string {
	anchor := region.Find("a[target]").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return a.AttrOr("target", "") == p.markers.NewWindowTarget
	}).First()

	href, ok := anchor.Attr("href")
	if !ok || href == "" {
		return nil
	}
	return &href
}

// numbers reads the circular number and the reference number from the
// first and second lines of the issuer paragraph.
func (p *DetailParser) numbers(region *goquery.Selection) (circular, reference string) {
	para := containing(region.Find("td p"), p.markers.IssuerToken).First()
	lines := circulars.SplitLines(lineText(para))
	if len(lines) > 0 {
		circular = lines[0]
	}
	if len(lines) > 1 {
		reference = lines[1]
	}
	return circular, reference
}

// meantFor returns the text of the element preceding the salutation.
func (p *DetailParser) meantFor(region *goquery.Selection) string {
	salutation := containing(region.Find("td p"), p.markers.SalutationToken).First()
	return text(salutation.Prev())
}

// sections segments the region into titled sections.
//
// Headings are grouped by parent so that each sibling run is folded once;
// the resulting sections are placed back in the document order of their
// headings.
func (p *DetailParser) sections(region *goquery.Selection) []circulars.Section {
	headings := region.Find("p." + p.markers.HeadingClass)
	position := make(map[*html.Node]int, headings.Length())
	headings.Each(func(i int, h *goquery.Selection) {
		position[h.Get(0)] = i
	})

	sections := make([]circulars.Section, headings.Length())
	folded := make(map[*html.Node]bool)
	headings.Each(func(_ int, h *goquery.Selection) {
		parent := h.Parent()
		if folded[parent.Get(0)] {
			return
		}
		folded[parent.Get(0)] = true

		var elements []circulars.Element
		var order []int
		parent.Children().Each(func(_ int, child *goquery.Selection) {
			el := p.classify(child)
			if el.Kind == circulars.ElementHeading {
				order = append(order, position[child.Get(0)])
			}
			elements = append(elements, el)
		})

		for i, section := range circulars.SegmentSections(elements, p.markers.TablePlaceholder) {
			sections[order[i]] = section
		}
	})

	return sections
}

// classify reduces a sibling element to its role in section segmentation.
func (p *DetailParser) classify(sel *goquery.Selection) circulars.Element {
	tag := goquery.NodeName(sel)
	marked := sel.HasClass(p.markers.HeadingClass)
	switch {
	case tag == "p" && marked:
		return circulars.Element{Kind: circulars.ElementHeading, Text: sel.Text()}
	case marked:
		return circulars.Element{Kind: circulars.ElementBoundary}
	case tag == "p":
		return circulars.Element{Kind: circulars.ElementParagraph, Text: sel.Text()}
	case tag == "table":
		return circulars.Element{Kind: circulars.ElementTable}
	default:
		return circulars.Element{Kind: circulars.ElementOther}
	}
}

// tables extracts every marked table nested in the region. The region
// itself is not among its own descendants, so it is never included.
func (p *DetailParser) tables(region *goquery.Selection) []*circulars.EmbeddedTable {
	tables := []*circulars.EmbeddedTable{}
	region.Find(p.markers.Table).Each(func(_ int, t *goquery.Selection) {
		tables = append(tables, p.table(t))
	})
	return tables
}

func (p *DetailParser) table(t *goquery.Selection) *circulars.EmbeddedTable {
	headRow := "tr." + p.markers.HeadingClass

	et := &circulars.EmbeddedTable{
		Title:   p.tableTitle(t),
		Headers: []string{},
		Data:    []*circulars.Record{},
	}

	t.Find(headRow).First().Find("td").Each(func(_ int, td *goquery.Selection) {
		et.Headers = append(et.Headers, circulars.NormalizeText(td.Text()))
	})

	t.Find("tr").Not("." + p.markers.HeadingClass).Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, circulars.NormalizeText(td.Text()))
		})
		if row := circulars.TableRow(et.Headers, cells); row != nil {
			et.Data = append(et.Data, row)
		}
	})

	return et
}

// tableTitle prefers a heading paragraph right before the table, then the
// first cell of its head row, then the unnamed fallback.
func (p *DetailParser) tableTitle(t *goquery.Selection) string {
	if title := text(t.Prev().Filter("p." + p.markers.HeadingClass)); title != "" {
		return title
	}
	if title := text(t.Find("tr." + p.markers.HeadingClass + " td")); title != "" {
		return title
	}
	return p.markers.UnnamedTable
}
