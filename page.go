package javadex

// AnchorExtractor reads anchors out of a rendered javadoc class page.
type AnchorExtractor interface {
	// Anchors returns every id and name attribute value on the page.
	Anchors(html string) (map[string]bool, error)

	// Section returns the HTML that documents the member with the given
	// decoded anchor. Returns ENOTFOUND if the page has no such anchor.
	Section(html, anchor string) (string, error)
}
