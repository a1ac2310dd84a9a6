package main

import (
	"fmt"

	"github.com/fwojciec/javadex"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return javadex.Errorf(javadex.EINVALID, "use --force to confirm deletion")
	}

	idx, err := findIndex(deps, c.Name)
	if err != nil {
		return err
	}

	if err := deps.Indexes.DeleteIndex(deps.Ctx, idx.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted index %q\n", idx.Name)
	return nil
}
