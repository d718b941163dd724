// Package htmltomarkdown renders circular page regions as Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/circulars"
)

// Ensure Converter implements circulars.Converter at compile time.
var _ circulars.Converter = (*Converter)(nil)

// blankRuns matches three or more line breaks with optional trailing spaces.
var blankRuns = regexp.MustCompile(`\n[ \t]*(\n[ \t]*){2,}`)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
//
// Circular pages pad their layout with non-breaking spaces and empty
// paragraphs; both are flattened so the output diffs cleanly between runs.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", circulars.Errorf(circulars.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", circulars.Errorf(circulars.EINTERNAL, "markdown conversion: %v", err)
	}

	result = strings.ReplaceAll(result, "\u00a0", " ")
	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result) + "\n", nil
}
