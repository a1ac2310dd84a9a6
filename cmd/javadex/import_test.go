package main_test

import (
	"context"
	"testing"

	"github.com/fwojciec/javadex"
	main "github.com/fwojciec/javadex/cmd/javadex"
	"github.com/fwojciec/javadex/mock"
	"github.com/fwojciec/javadex/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	noIndexes := func(_ context.Context, _ javadex.IndexFilter) ([]*javadex.Index, error) {
		return []*javadex.Index{}, nil
	}

	t.Run("imports a local file with an explicit base", func(t *testing.T) {
		t.Parallel()

		var created *javadex.Index
		var stored []*javadex.Member
		deps, stdout, _ := newDeps()
		deps.Indexes = &mock.IndexService{
			FindIndexesFn: noIndexes,
			CreateIndexFn: func(_ context.Context, idx *javadex.Index, members []*javadex.Member) error {
				idx.ID = "idx-1"
				idx.MemberCount = len(members)
				created, stored = idx, members
				return nil
			},
		}

		cmd := &main.ImportCmd{Name: "turbine", Source: writeFile(t, "member-search-index.js", turbineIndex), Base: turbineBase, Format: "auto"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "turbine", created.Name)
		assert.Equal(t, turbineBase, created.SourceURL)
		assert.Equal(t, turbineMembers(), stored)
		assert.Contains(t, stdout.String(), `Imported 4 members into "turbine" (idx-1)`)
	})

	t.Run("derives the base from a URL source", func(t *testing.T) {
		t.Parallel()

		var created *javadex.Index
		deps, _, _ := newDeps()
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				assert.Equal(t, turbineBase+"member-search-index.js", url)
				return turbineIndex, nil
			},
		}
		deps.Indexes = &mock.IndexService{
			FindIndexesFn: noIndexes,
			CreateIndexFn: func(_ context.Context, idx *javadex.Index, _ []*javadex.Member) error {
				created = idx
				return nil
			},
		}

		cmd := &main.ImportCmd{Name: "turbine", Source: turbineBase + "member-search-index.js", Format: "auto"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, turbineBase, created.SourceURL)
	})

	t.Run("reads the XML form by extension", func(t *testing.T) {
		t.Parallel()

		xml := `<?xml version="1.0" encoding="UTF-8"?>
<memberSearchIndex>
  <member package="org.apache.turbine.modules" class="ActionEvent" label="actionEventCalls"/>
</memberSearchIndex>`

		var stored []*javadex.Member
		deps, _, _ := newDeps()
		deps.Indexes = &mock.IndexService{
			FindIndexesFn: noIndexes,
			CreateIndexFn: func(_ context.Context, _ *javadex.Index, members []*javadex.Member) error {
				stored = members
				return nil
			},
		}

		cmd := &main.ImportCmd{Name: "turbine", Source: writeFile(t, "index.xml", xml), Format: "auto"}
		require.NoError(t, cmd.Run(deps))
		require.Len(t, stored, 1)
		assert.Equal(t, "actionEventCalls", stored[0].Label)
	})

	t.Run("rejects an index with structural errors", func(t *testing.T) {
		t.Parallel()

		src := writeFile(t, "member-search-index.js",
			`memberSearchIndex = [{"p":"org.apache.turbine","c":"Turbine","l":"init(("}]`)

		deps, _, stderr := newDeps()
		deps.Indexes = &mock.IndexService{}

		cmd := &main.ImportCmd{Name: "turbine", Source: src, Format: "auto"}
		err := cmd.Run(deps)

		assert.Equal(t, javadex.EINVALID, javadex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "label-syntax")
		assert.Contains(t, stderr.String(), "javadex lint")
	})

	t.Run("rejects an empty index", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		cmd := &main.ImportCmd{Name: "turbine", Source: writeFile(t, "empty.js", "memberSearchIndex = []"), Format: "auto"}
		err := cmd.Run(deps)

		assert.Equal(t, javadex.EINVALID, javadex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "contains no members")
	})

	t.Run("reports a missing file", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		cmd := &main.ImportCmd{Name: "turbine", Source: "/nonexistent/member-search-index.js", Format: "auto"}
		err := cmd.Run(deps)

		assert.Equal(t, javadex.ENOTFOUND, javadex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})

	t.Run("rejects a non-http base", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		cmd := &main.ImportCmd{Name: "turbine", Source: "x.js", Base: "apidocs/", Format: "auto"}
		err := cmd.Run(deps)

		assert.Equal(t, javadex.EINVALID, javadex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "must be an http(s) URL")
	})

	t.Run("is a no-op when content is unchanged", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Indexes = &mock.IndexService{
			FindIndexesFn: func(_ context.Context, _ javadex.IndexFilter) ([]*javadex.Index, error) {
				return []*javadex.Index{{ID: "idx-1", Name: "turbine", MemberCount: 4, ContentHash: sqlite.HashMembers(turbineMembers())}}, nil
			},
		}

		cmd := &main.ImportCmd{Name: "turbine", Source: writeFile(t, "member-search-index.js", turbineIndex), Format: "auto"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `Index "turbine" is up to date (4 members)`)
	})

	t.Run("refuses to replace changed content without --force", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Indexes = &mock.IndexService{
			FindIndexesFn: func(_ context.Context, _ javadex.IndexFilter) ([]*javadex.Index, error) {
				return []*javadex.Index{{ID: "idx-1", Name: "turbine", ContentHash: "stale"}}, nil
			},
		}

		cmd := &main.ImportCmd{Name: "turbine", Source: writeFile(t, "member-search-index.js", turbineIndex), Format: "auto"}
		err := cmd.Run(deps)

		assert.Equal(t, javadex.ECONFLICT, javadex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("replaces the existing index with --force", func(t *testing.T) {
		t.Parallel()

		var replacedID string
		var stored *javadex.Index
		deps, _, _ := newDeps()
		deps.Indexes = &mock.IndexService{
			FindIndexesFn: func(_ context.Context, _ javadex.IndexFilter) ([]*javadex.Index, error) {
				return []*javadex.Index{{ID: "idx-old", Name: "turbine", ContentHash: sqlite.HashMembers(turbineMembers())}}, nil
			},
			ReplaceIndexFn: func(_ context.Context, id string, idx *javadex.Index, _ []*javadex.Member) error {
				replacedID = id
				stored = idx
				return nil
			},
		}

		cmd := &main.ImportCmd{Name: "turbine", Source: writeFile(t, "member-search-index.js", turbineIndex), Format: "auto", Force: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "idx-old", replacedID)
		require.NotNil(t, stored)
		assert.Equal(t, javadex.ScriptLayout{Var: "memberSearchIndex", URLKey: "url", Trailer: ";updateSearchResults();"}, stored.Layout)
	})

	t.Run("reports a failed replace without deleting first", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps()
		deps.Indexes = &mock.IndexService{
			FindIndexesFn: func(_ context.Context, _ javadex.IndexFilter) ([]*javadex.Index, error) {
				return []*javadex.Index{{ID: "idx-old", Name: "turbine", ContentHash: "stale"}}, nil
			},
			ReplaceIndexFn: func(_ context.Context, _ string, _ *javadex.Index, _ []*javadex.Member) error {
				return context.Canceled
			},
			DeleteIndexFn: func(_ context.Context, _ string) error {
				t.Error("DeleteIndex must not be called on --force")
				return nil
			},
		}

		cmd := &main.ImportCmd{Name: "turbine", Source: writeFile(t, "member-search-index.js", turbineIndex), Format: "auto", Force: true}
		err := cmd.Run(deps)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, stderr.String(), "error: Internal error.")
		assert.NotContains(t, stdout.String(), "Imported")
	})
}
