package circulars

// IndexParser turns an index page into summary records.
type IndexParser interface {
	// ParseIndex returns the index title, the header sequence and one summary
	// record per data row, in document order.
	// Returns ENOTFOUND if the page has no table matching the table marker.
	ParseIndex(html string) (*IndexResult, error)
}

// DetailParser turns a detail page into a detail record.
type DetailParser interface {
	// ParseDetail extracts the flat fields, sections and embedded tables.
	// Returns ENOTFOUND if the page has no table matching the table marker.
	// Partial results are never returned alongside an error.
	ParseDetail(html string) (*DetailRecord, error)
}

// FormReader reads the state a page's form carries between requests.
type FormReader interface {
	// HiddenFields returns the name/value pairs of the page's hidden inputs.
	HiddenFields(html string) (map[string]string, error)
}

// ExtractResult holds the main region of a detail page.
type ExtractResult struct {
	// Title is the circular title found in the region's header cell.
	Title string

	// ContentHTML is the inner HTML of the main region's cells, without
	// the layout table around them.
	ContentHTML string
}

// Extractor isolates the main region of a detail page for archiving.
type Extractor interface {
	// Extract returns the region located by the table marker.
	// Returns ENOTFOUND if the page has no such region.
	Extract(html string) (*ExtractResult, error)
}
