package main

import (
	"fmt"

	"github.com/fwojciec/javadex"
	"github.com/fwojciec/javadex/check"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	idx, err := findIndex(deps, c.Name)
	if err != nil {
		return err
	}
	if idx.SourceURL == "" {
		fmt.Fprintf(deps.Stderr, "error: index %q has no documentation base. Re-import it with --base.\n", c.Name)
		return javadex.Errorf(javadex.EINVALID, "index %q has no documentation base", c.Name)
	}

	members, err := allMembers(deps, idx)
	if err != nil {
		return err
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = deps.Config.Check.Concurrency
	}
	rps := c.RPS
	if rps <= 0 {
		rps = deps.Config.Check.RPS
	}

	checker := &check.Checker{
		Fetcher:     deps.Fetcher,
		Anchors:     deps.Anchors,
		RateLimiter: check.NewHostLimiter(rps),
		Concurrency: concurrency,
		RetryDelays: deps.RetryDelays,
	}

	progress := func(event check.ProgressEvent) {
		switch event.Type {
		case check.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Checking %d pages\n", event.Total)
		case check.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, javadex.ErrorMessage(event.Error))
		}
	}

	report, err := checker.Check(deps.Ctx, idx.SourceURL, members, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}

	for _, m := range report.Missing {
		fmt.Fprintf(deps.Stdout, "  missing %s\n      %s\n", m.QualifiedName(), memberURL(idx, m))
	}
	fmt.Fprintf(deps.Stdout, "Checked %d members on %d pages: %d missing, %d pages failed\n",
		report.Checked, report.Pages, len(report.Missing), len(report.Failed))

	if !report.OK() {
		fmt.Fprintf(deps.Stderr, "error: %d missing anchors, %d failed pages\n", len(report.Missing), len(report.Failed))
		return javadex.Errorf(javadex.EINVALID, "%d missing anchors, %d failed pages", len(report.Missing), len(report.Failed))
	}
	return nil
}
