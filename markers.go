package circulars

// DefaultBaseURL is the script directory detail page hrefs are resolved against.
const DefaultBaseURL = "https://m.rbi.org.in//scripts/"

// DefaultIndexURL is the circular index page.
const DefaultIndexURL = "https://m.rbi.org.in/scripts/BS_CircularIndexDisplay.aspx"

// Markers holds the positional and stylistic conventions the extractors rely
// on to find structure in the publication's markup.
type Markers struct {
	// BaseURL resolves relative detail page hrefs found in index rows.
	BaseURL string

	// Table selects the bordered table that frames both page types.
	Table string

	// HeaderCell selects the cell holding the circular title's bold text.
	HeaderCell string

	// IssuerToken marks the paragraph carrying the circular and reference numbers.
	IssuerToken string

	// SalutationToken marks the paragraph that follows the addressee.
	SalutationToken string

	// DateParagraph selects the paragraph holding the issue date.
	DateParagraph string

	// HeadingClass marks heading paragraphs and table head rows.
	HeadingClass string

	// NewWindowTarget is the anchor target that signals a PDF link.
	NewWindowTarget string

	// TablePlaceholder stands in for a nested table inside section content.
	TablePlaceholder string

	// UnnamedTable is the title of an embedded table with no better title.
	UnnamedTable string
}

// DefaultMarkers returns the conventions of the RBI circular pages.
func DefaultMarkers() Markers {
	return Markers{
		BaseURL:          DefaultBaseURL,
		Table:            "table.tablebg",
		HeaderCell:       "td.tableheader",
		IssuerToken:      "RBI",
		SalutationToken:  "Madam",
		DateParagraph:    `p[align="right"]`,
		HeadingClass:     "head",
		NewWindowTarget:  "_blank",
		TablePlaceholder: "Table content (embedded table)",
		UnnamedTable:     "Unnamed Table",
	}
}

// Validate returns an error if a marker required by the extractors is empty.
func (m Markers) Validate() error {
	switch {
	case m.BaseURL == "":
		return Errorf(EINVALID, "markers: base URL required")
	case m.Table == "":
		return Errorf(EINVALID, "markers: table selector required")
	case m.HeadingClass == "":
		return Errorf(EINVALID, "markers: heading class required")
	}
	return nil
}
