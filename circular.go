package circulars

import (
	"bytes"
	"encoding/json"
)

// LinkKey is the reserved summary record key holding the detail page locator.
const LinkKey = "link"

// detailsKey is the summary record key holding the attached detail result.
const detailsKey = "details"

// IndexResult is the structured form of an index page.
type IndexResult struct {
	Title     string           `json:"title"`
	Headers   []string         `json:"headers"`
	Circulars []*SummaryRecord `json:"circulars"`
}

// SummaryRecord is one data row of the index table, keyed by column header.
// Details is attached by the batch driver once the linked page is processed.
type SummaryRecord struct {
	Record
	Details *DetailResult
}

// Link returns the absolute detail page locator, or "" when the row had no anchor.
func (s *SummaryRecord) Link() string {
	link, _ := s.Get(LinkKey)
	return link
}

// MarshalJSON encodes the row fields in order followed by the details, if any.
func (s SummaryRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := s.writeFields(&buf); err != nil {
		return nil, err
	}
	if s.Details != nil {
		if s.Len() > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, detailsKey, s.Details); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a persisted summary record.
func (s *SummaryRecord) UnmarshalJSON(data []byte) error {
	*s = SummaryRecord{}
	return decodeObject(data, func(key string, raw json.RawMessage) error {
		if key == detailsKey {
			s.Details = &DetailResult{}
			return json.Unmarshal(raw, s.Details)
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		s.Set(key, value)
		return nil
	})
}

// DetailRecord is the structured form of a detail page.
type DetailRecord struct {
	Title           string           `json:"title"`
	CircularNumber  string           `json:"circularNumber"`
	ReferenceNumber string           `json:"referenceNumber"`
	Date            string           `json:"date"`
	MeantFor        string           `json:"meantFor"`
	PDFLink         *string          `json:"pdfLink"`
	ContentSections []Section        `json:"contentSections"`
	Tables          []*EmbeddedTable `json:"tables"`
}

// Section is a titled run of paragraph text between two heading paragraphs.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// EmbeddedTable is a table nested inside a detail page.
type EmbeddedTable struct {
	Title   string    `json:"title"`
	Headers []string  `json:"headers"`
	Data    []*Record `json:"data"`
}

// DetailResult is the outcome of processing one detail page.
// Exactly one of Circular and Error is set.
type DetailResult struct {
	Circular *DetailRecord `json:"circular,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// NewDetailResult wraps the outcome of a fetch and parse. A non-nil err wins.
func NewDetailResult(rec *DetailRecord, err error) *DetailResult {
	if err != nil {
		return &DetailResult{Error: ErrorMessage(err)}
	}
	return &DetailResult{Circular: rec}
}

// OK reports whether the detail page was extracted.
func (r *DetailResult) OK() bool {
	return r != nil && r.Circular != nil
}

// ErrorResult is the output written in place of an IndexResult when the
// index page could not be extracted.
type ErrorResult struct {
	Error string `json:"error"`
}
