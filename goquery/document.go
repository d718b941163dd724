// Package goquery implements the circular extractors on top of goquery.
// Every parse call builds its own document tree; parsers hold only their
// markers and are safe for concurrent use.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/circulars"
	"golang.org/x/net/html"
)

// newDocument parses HTML into a fresh document tree.
func newDocument(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, circulars.Errorf(circulars.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// text returns the whitespace-normalized text of the first node in sel.
func text(sel *goquery.Selection) string {
	return circulars.NormalizeText(sel.First().Text())
}

// lineText returns the text of sel with <br> elements rendered as line breaks.
func lineText(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return b.String()
}

// containing narrows sel to the elements whose text contains token.
func containing(sel *goquery.Selection, token string) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), token)
	})
}
