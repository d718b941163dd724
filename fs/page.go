// Package fs provides file-based sinks for scrape results.
package fs

import (
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/circulars"
	"gopkg.in/yaml.v3"
)

// frontmatter is the YAML header written above each markdown page.
type frontmatter struct {
	Source         string `yaml:"source"`
	Title          string `yaml:"title,omitempty"`
	CircularNumber string `yaml:"circular_number,omitempty"`
	Date           string `yaml:"date,omitempty"`
}

// PageFileName returns the file name a page is stored under.
//
// Circular numbers are unique per circular, so they are preferred. Pages
// without one are named after the last segment of their URL plus its query,
// since the detail pages share one script path and differ only by query.
// Example: https://example.org/scripts/Notification.aspx?Id=12 → Notification-Id-12.md
func PageFileName(page *circulars.Page) (string, error) {
	if name := slug(page.CircularNumber); name != "" {
		return name + ".md", nil
	}

	u, err := url.Parse(page.URL)
	if err != nil {
		return "", circulars.Errorf(circulars.EINVALID, "invalid page URL %q: %v", page.URL, err)
	}
	base := path.Base(u.Path)
	base = strings.TrimSuffix(base, path.Ext(base))
	name := slug(base + " " + u.RawQuery)
	if name == "" {
		return "", circulars.Errorf(circulars.EINVALID, "cannot derive file name from %q", page.URL)
	}
	return name + ".md", nil
}

// slug keeps ASCII letters, digits, dots and underscores, and turns every
// other run of characters into a single hyphen. Leading dots are dropped so
// that a slug can never name a parent directory.
func slug(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
		default:
			hyphen = true
		}
	}
	return strings.TrimLeft(b.String(), ".")
}

// FormatPage formats a page with YAML frontmatter.
func FormatPage(page *circulars.Page) (string, error) {
	header, err := yaml.Marshal(frontmatter{
		Source:         page.URL,
		Title:          page.Title,
		CircularNumber: page.CircularNumber,
		Date:           page.Date,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(page.Content)
	return b.String(), nil
}
