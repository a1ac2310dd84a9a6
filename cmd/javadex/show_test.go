package main_test

import (
	"context"
	"testing"

	"github.com/fwojciec/javadex"
	main "github.com/fwojciec/javadex/cmd/javadex"
	"github.com/fwojciec/javadex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the member section as markdown", func(t *testing.T) {
		t.Parallel()

		var fetchedURL, sectionAnchor, convertedHTML string
		deps, stdout, _ := newDeps()
		deps.Indexes = turbineIndexService(turbineBase)
		deps.Search = &mock.SearchService{
			SearchFn: func(_ context.Context, query string, opts javadex.SearchOptions) ([]javadex.SearchResult, error) {
				assert.Equal(t, 1, opts.Limit)
				return javadex.Rank(turbineMembers(), query, opts.Limit), nil
			},
		}
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetchedURL = url
				return "<html><section id=\"readPropertiesFile(java.lang.String)\">docs</section></html>", nil
			},
		}
		deps.Anchors = &mock.AnchorExtractor{
			SectionFn: func(_ string, anchor string) (string, error) {
				sectionAnchor = anchor
				return "<section>docs</section>", nil
			},
		}
		deps.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				convertedHTML = html
				return "Reads the properties file.", nil
			},
		}

		err := (&main.ShowCmd{Name: "turbine", Query: "readPropertiesFile"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, turbineBase+"org/apache/turbine/test/BaseTestCase.html", fetchedURL)
		assert.Equal(t, "readPropertiesFile(java.lang.String)", sectionAnchor)
		assert.Equal(t, "<section>docs</section>", convertedHTML)
		assert.Equal(t,
			"# org.apache.turbine.test.BaseTestCase.readPropertiesFile(String)\n\n"+
				turbineBase+"org/apache/turbine/test/BaseTestCase.html#readPropertiesFile(java.lang.String)\n\n"+
				"Reads the properties file.\n",
			stdout.String())
	})

	t.Run("reports when nothing matches", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Indexes = turbineIndexService(turbineBase)
		deps.Search = &mock.SearchService{
			SearchFn: func(_ context.Context, _ string, _ javadex.SearchOptions) ([]javadex.SearchResult, error) {
				return []javadex.SearchResult{}, nil
			},
		}

		err := (&main.ShowCmd{Name: "turbine", Query: "nothing"}).Run(deps)

		assert.Equal(t, javadex.ENOTFOUND, javadex.ErrorCode(err))
		assert.Contains(t, stderr.String(), `no member matches "nothing"`)
	})

	t.Run("reports a missing section", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Indexes = turbineIndexService(turbineBase)
		deps.Search = &mock.SearchService{
			SearchFn: func(_ context.Context, query string, opts javadex.SearchOptions) ([]javadex.SearchResult, error) {
				return javadex.Rank(turbineMembers(), query, opts.Limit), nil
			},
		}
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html></html>", nil
			},
		}
		deps.Anchors = &mock.AnchorExtractor{
			SectionFn: func(_ string, anchor string) (string, error) {
				return "", javadex.Errorf(javadex.ENOTFOUND, "anchor %q not found", anchor)
			},
		}

		err := (&main.ShowCmd{Name: "turbine", Query: "actionEventCalls"}).Run(deps)

		assert.Equal(t, javadex.ENOTFOUND, javadex.ErrorCode(err))
		assert.Contains(t, stderr.String(), `error: anchor "actionEventCalls" not found`)
	})

	t.Run("requires a documentation base", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Indexes = turbineIndexService("")

		err := (&main.ShowCmd{Name: "turbine", Query: "invoke"}).Run(deps)

		assert.Equal(t, javadex.EINVALID, javadex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--base")
	})
}
