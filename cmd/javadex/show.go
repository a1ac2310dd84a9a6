package main

import (
	"fmt"

	"github.com/fwojciec/javadex"
	jhttp "github.com/fwojciec/javadex/http"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	idx, err := findIndex(deps, c.Name)
	if err != nil {
		return err
	}
	if idx.SourceURL == "" {
		fmt.Fprintf(deps.Stderr, "error: index %q has no documentation base. Re-import it with --base.\n", c.Name)
		return javadex.Errorf(javadex.EINVALID, "index %q has no documentation base", c.Name)
	}

	results, err := deps.Search.Search(deps.Ctx, c.Query, javadex.SearchOptions{IndexID: idx.ID, Limit: 1})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}
	if len(results) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no member matches %q. Use 'javadex search' to explore.\n", c.Query)
		return javadex.Errorf(javadex.ENOTFOUND, "no member matches %q", c.Query)
	}
	m := results[0].Member

	markdown, pageURL, err := c.render(deps, idx, m)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "# %s\n\n%s\n\n%s\n", m.QualifiedName(), pageURL, markdown)
	return nil
}

// render fetches m's class page and converts its documentation section.
func (c *ShowCmd) render(deps *Dependencies, idx *javadex.Index, m *javadex.Member) (string, string, error) {
	pageURL, err := jhttp.Resolve(idx.SourceURL, m.PagePath())
	if err != nil {
		return "", "", err
	}

	anchor, err := m.Anchor()
	if err != nil {
		return "", "", err
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, pageURL)
	if err != nil {
		return "", "", err
	}

	section, err := deps.Anchors.Section(html, anchor)
	if err != nil {
		return "", "", err
	}

	markdown, err := deps.Converter.Convert(section)
	if err != nil {
		return "", "", err
	}

	return markdown, memberURL(idx, m), nil
}
