package main

import (
	"fmt"

	"github.com/fwojciec/javadex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	indexes, err := deps.Indexes.FindIndexes(deps.Ctx, javadex.IndexFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}

	if len(indexes) == 0 {
		fmt.Fprintln(deps.Stdout, "No indexes found. Use 'javadex import' to add one.")
		return nil
	}

	for _, idx := range indexes {
		source := idx.SourceURL
		if source == "" {
			source = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d members  %s\n", idx.ID, idx.Name, idx.MemberCount, source)
	}

	return nil
}
