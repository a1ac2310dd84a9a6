package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/javadex"
	"github.com/fwojciec/javadex/lint"
)

// Run executes the lint command.
func (c *LintCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		if os.IsNotExist(err) {
			err = javadex.Errorf(javadex.ENOTFOUND, "file %q not found", c.File)
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}

	file, err := decodeIndex(data, detectFormat(c.File, c.Format))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}

	problems := lint.Lint(file.Members)
	if len(problems) == 0 {
		fmt.Fprintf(deps.Stdout, "No problems found in %d members\n", len(file.Members))
		return nil
	}

	var errorCount, warningCount int
	for _, p := range problems {
		fmt.Fprintln(deps.Stdout, p)
		if p.Severity == lint.SeverityError {
			errorCount++
		} else {
			warningCount++
		}
	}
	fmt.Fprintf(deps.Stdout, "\n%d members, %d errors, %d warnings\n", len(file.Members), errorCount, warningCount)

	if errorCount > 0 {
		fmt.Fprintf(deps.Stderr, "error: %s has %d structural errors\n", c.File, errorCount)
		return javadex.Errorf(javadex.EINVALID, "%d structural errors", errorCount)
	}
	return nil
}
