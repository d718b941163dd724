// Package circulars extracts structured records from a regulator's circular
// index and its linked detail pages and emits them as nested JSON.
//
// The index page and the detail pages carry no machine-readable schema. Row
// order, CSS class names and tag adjacency are the only boundaries, so the
// extractors infer headers, sections and embedded tables from those
// conventions. The conventions themselves live in Markers so the same
// algorithm can be pointed at structurally similar pages.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package circulars
