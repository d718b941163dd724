package circulars

import "strings"

// NormalizeText collapses every run of whitespace, line breaks included,
// to a single space and trims both ends.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitLines splits s on line breaks and returns the non-blank lines,
// each normalized.
func SplitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = NormalizeText(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
