package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/circulars"
)

// Ensure FormReader implements circulars.FormReader at compile time.
var _ circulars.FormReader = (*FormReader)(nil)

// FormReader reads hidden form state (view state, event validation and the
// like) that a server expects to see replayed on postback.
type FormReader struct{}

// NewFormReader creates a new FormReader.
func NewFormReader() *FormReader {
	return &FormReader{}
}

// HiddenFields returns the name/value pairs of all named hidden inputs.
// A later input with the same name overrides an earlier one.
func (r *FormReader) HiddenFields(rawHTML string) (map[string]string, error) {
	doc, err := newDocument(rawHTML)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	doc.Find(`input[type="hidden"]`).Each(func(_ int, input *goquery.Selection) {
		name, ok := input.Attr("name")
		if !ok || name == "" {
			return
		}
		fields[name] = input.AttrOr("value", "")
	})

	return fields, nil
}
