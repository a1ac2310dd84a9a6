package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/javadex"
	jhttp "github.com/fwojciec/javadex/http"
	"github.com/fwojciec/javadex/javadoc"
	"github.com/fwojciec/javadex/lint"
	"github.com/fwojciec/javadex/sqlite"
)

// maxReportedProblems caps the lint errors printed when an import is rejected.
const maxReportedProblems = 10

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	if c.Base != "" {
		if err := jhttp.ValidateBase(c.Base); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
			return err
		}
	}

	file, base, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}

	// Reject structurally broken indexes before touching storage
	problems := lint.Lint(file.Members)
	if lint.HasErrors(problems) {
		errorCount := 0
		for _, p := range problems {
			if p.Severity != lint.SeverityError {
				continue
			}
			errorCount++
			if errorCount <= maxReportedProblems {
				fmt.Fprintf(deps.Stderr, "  %s\n", p)
			}
		}
		fmt.Fprintf(deps.Stderr, "error: %s has %d structural errors. Run 'javadex lint' for details.\n", c.Source, errorCount)
		return javadex.Errorf(javadex.EINVALID, "index has %d structural errors", errorCount)
	}
	if n := len(problems); n > 0 {
		fmt.Fprintf(deps.Stderr, "  %d warnings. Run 'javadex lint' for details.\n", n)
	}

	hash := sqlite.HashMembers(file.Members)

	existing, err := deps.Indexes.FindIndexes(deps.Ctx, javadex.IndexFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}
	idx := &javadex.Index{
		Name:      c.Name,
		SourceURL: base,
		Layout:    file.Layout(),
	}
	if len(existing) > 0 {
		old := existing[0]
		if !c.Force {
			if old.ContentHash == hash {
				fmt.Fprintf(deps.Stdout, "Index %q is up to date (%d members)\n", c.Name, old.MemberCount)
				return nil
			}
			fmt.Fprintf(deps.Stderr, "error: index %q already exists. Use --force to replace it.\n", c.Name)
			return javadex.Errorf(javadex.ECONFLICT, "index %q already exists", c.Name)
		}
		err = deps.Indexes.ReplaceIndex(deps.Ctx, old.ID, idx, file.Members)
	} else {
		err = deps.Indexes.CreateIndex(deps.Ctx, idx, file.Members)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d members into %q (%s)\n", idx.MemberCount, idx.Name, idx.ID)
	return nil
}

// load reads and decodes the source, returning the documentation base.
func (c *ImportCmd) load(deps *Dependencies) (*javadoc.File, string, error) {
	format := detectFormat(c.Source, c.Format)
	base := c.Base

	var data []byte
	if jhttp.IsURL(c.Source) {
		body, err := deps.Fetcher.Fetch(deps.Ctx, c.Source)
		if err != nil {
			return nil, "", err
		}
		data = []byte(body)
		if base == "" {
			if base, err = jhttp.BaseOf(c.Source); err != nil {
				return nil, "", err
			}
		}
	} else {
		var err error
		if data, err = os.ReadFile(c.Source); err != nil {
			if os.IsNotExist(err) {
				return nil, "", javadex.Errorf(javadex.ENOTFOUND, "file %q not found", c.Source)
			}
			return nil, "", err
		}
	}

	file, err := decodeIndex(data, format)
	if err != nil {
		return nil, "", err
	}
	if len(file.Members) == 0 {
		return nil, "", javadex.Errorf(javadex.EINVALID, "%s contains no members", c.Source)
	}
	return file, base, nil
}
