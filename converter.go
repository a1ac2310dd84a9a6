package javadex

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as a member's documentation
	// section, into Markdown.
	Convert(html string) (string, error)
}
