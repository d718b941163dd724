package circulars

import "strconv"

// overflowKey names a cell that has no header at its position.
// Keys are 1-based: the fourth cell of a three-header table is Column4.
func overflowKey(i int) string {
	return "Column" + strconv.Itoa(i+1)
}

// OverflowKey holds index cells that have no header at their position.
const OverflowKey = "undefined"

// TableRow pairs cells with headers by position. Cells beyond the headers are
// keyed Column{n}. It returns nil for a row without cells; a row of blank
// cells is kept with empty values.
func TableRow(headers, cells []string) *Record {
	if len(cells) == 0 {
		return nil
	}
	row := &Record{}
	for i, cell := range cells {
		key := overflowKey(i)
		if i < len(headers) {
			key = headers[i]
		}
		row.Set(key, cell)
	}
	return row
}

// IndexRow pairs index cells with headers by position. A non-empty link is
// stored first under LinkKey.
//
// Rows are never rejected for their shape: a short row leaves trailing
// headers unset, and cells past the last header all land on OverflowKey,
// each overwriting the previous one.
func IndexRow(headers, cells []string, link string) *SummaryRecord {
	rec := &SummaryRecord{}
	if link != "" {
		rec.Set(LinkKey, link)
	}
	for i, cell := range cells {
		key := OverflowKey
		if i < len(headers) {
			key = headers[i]
		}
		rec.Set(key, cell)
	}
	return rec
}
