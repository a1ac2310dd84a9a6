package main

import (
	"fmt"

	"github.com/fwojciec/javadex"
	"github.com/fwojciec/javadex/chi"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	for _, name := range c.Names {
		if _, err := findIndex(deps, name); err != nil {
			return err
		}
	}

	addr := c.Addr
	if addr == "" {
		addr = deps.Config.HTTP.Addr
	}

	srv := chi.NewServer(deps.Indexes, deps.Members, deps.Search, deps.Logger, c.Names...)
	srv.ReadTimeout = deps.Config.Serve.ReadTimeout

	fmt.Fprintf(deps.Stdout, "Serving on http://%s\n", addr)
	if err := srv.ListenAndServe(deps.Ctx, addr); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}
	return nil
}
