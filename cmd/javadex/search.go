package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/javadex"
)

// suggestionCount is the number of near misses offered when nothing matches.
const suggestionCount = 5

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	idx, err := findIndex(deps, c.Name)
	if err != nil {
		return err
	}

	results, err := deps.Search.Search(deps.Ctx, c.Query, javadex.SearchOptions{
		IndexID: idx.ID,
		Package: c.Package,
		Class:   c.Class,
		Limit:   c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No matches for %q.\n", c.Query)
		members, err := allMembers(deps, idx)
		if err != nil {
			return err
		}
		if suggestions := javadex.Suggest(members, c.Query, suggestionCount); len(suggestions) > 0 {
			fmt.Fprintf(deps.Stdout, "Did you mean: %s?\n", strings.Join(suggestions, ", "))
		}
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%s\n    %s\n", r.Member.QualifiedName(), memberURL(idx, r.Member))
	}
	return nil
}
