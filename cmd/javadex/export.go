package main

import (
	"fmt"

	"github.com/fwojciec/javadex"
	"github.com/fwojciec/javadex/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	idx, err := findIndex(deps, c.Name)
	if err != nil {
		return err
	}

	members, err := allMembers(deps, idx)
	if err != nil {
		return err
	}

	if c.Output == "" {
		if err := encodeIndex(deps.Stdout, idx, members, c.Format); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
			return err
		}
		return nil
	}

	f, err := fs.Create(c.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}
	if err := encodeIndex(f, idx, members, c.Format); err != nil {
		_ = f.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}
	if err := f.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stderr, "Wrote %d members to %s\n", len(members), f.Path())
	return nil
}
