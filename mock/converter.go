package mock

import "github.com/fwojciec/circulars"

var _ circulars.Converter = (*Converter)(nil)

// Converter is a mock implementation of circulars.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
