package circulars

import "strings"

// ElementKind classifies a sibling element for section segmentation.
type ElementKind int

// Element kinds recognised by SegmentSections.
const (
	ElementOther ElementKind = iota
	ElementParagraph
	ElementTable
	// ElementHeading is a heading paragraph; it opens a new section.
	ElementHeading
	// ElementBoundary carries the heading class without being a paragraph.
	// It closes the open section but opens none.
	ElementBoundary
)

// Element is a sibling element reduced to what segmentation needs.
type Element struct {
	Kind ElementKind
	Text string
}

// sectionState is the fold state: open is nil between headings.
type sectionState struct {
	sections []Section
	open     *Section
	content  strings.Builder
}

func (s *sectionState) close() {
	if s.open == nil {
		return
	}
	s.open.Content = strings.TrimSpace(s.content.String())
	s.sections = append(s.sections, *s.open)
	s.open = nil
	s.content.Reset()
}

// SegmentSections folds a run of sibling elements into sections.
//
// Each heading opens a section titled with its text. While a section is
// open, paragraphs contribute their trimmed text and tables contribute
// placeholder, each followed by a blank line; anything else is skipped.
// The section closes at the next heading or boundary, or at the end of the
// run. Elements before the first heading belong to no section.
func SegmentSections(elements []Element, placeholder string) []Section {
	state := &sectionState{}
	for _, el := range elements {
		switch el.Kind {
		case ElementHeading:
			state.close()
			state.open = &Section{Title: NormalizeText(el.Text)}
		case ElementBoundary:
			state.close()
		case ElementParagraph:
			if state.open != nil {
				state.content.WriteString(strings.TrimSpace(el.Text))
				state.content.WriteString("\n\n")
			}
		case ElementTable:
			if state.open != nil {
				state.content.WriteString(placeholder)
				state.content.WriteString("\n\n")
			}
		}
	}
	state.close()
	return state.sections
}
