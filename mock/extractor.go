package mock

import "github.com/fwojciec/circulars"

var (
	_ circulars.IndexParser  = (*IndexParser)(nil)
	_ circulars.DetailParser = (*DetailParser)(nil)
	_ circulars.FormReader   = (*FormReader)(nil)
	_ circulars.Extractor    = (*Extractor)(nil)
)

// IndexParser is a mock implementation of circulars.IndexParser.
type IndexParser struct {
	ParseIndexFn func(html string) (*circulars.IndexResult, error)
}

func (p *IndexParser) ParseIndex(html string) (*circulars.IndexResult, error) {
	return p.ParseIndexFn(html)
}

// DetailParser is a mock implementation of circulars.DetailParser.
type DetailParser struct {
	ParseDetailFn func(html string) (*circulars.DetailRecord, error)
}

func (p *DetailParser) ParseDetail(html string) (*circulars.DetailRecord, error) {
	return p.ParseDetailFn(html)
}

// FormReader is a mock implementation of circulars.FormReader.
type FormReader struct {
	HiddenFieldsFn func(html string) (map[string]string, error)
}

func (r *FormReader) HiddenFields(html string) (map[string]string, error) {
	return r.HiddenFieldsFn(html)
}

// Extractor is a mock implementation of circulars.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*circulars.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*circulars.ExtractResult, error) {
	return e.ExtractFn(html)
}
