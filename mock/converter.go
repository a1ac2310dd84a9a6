package mock

import "github.com/fwojciec/javadex"

var (
	_ javadex.Converter       = (*Converter)(nil)
	_ javadex.AnchorExtractor = (*AnchorExtractor)(nil)
)

// Converter is a mock implementation of javadex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// AnchorExtractor is a mock implementation of javadex.AnchorExtractor.
type AnchorExtractor struct {
	AnchorsFn func(html string) (map[string]bool, error)
	SectionFn func(html, anchor string) (string, error)
}

func (e *AnchorExtractor) Anchors(html string) (map[string]bool, error) {
	return e.AnchorsFn(html)
}

func (e *AnchorExtractor) Section(html, anchor string) (string, error) {
	return e.SectionFn(html, anchor)
}
