package check_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/javadex"
	"github.com/fwojciec/javadex/check"
	"github.com/fwojciec/javadex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://turbine.apache.org/apidocs/"

func checkMembers() []*javadex.Member {
	return []*javadex.Member{
		{Package: "org.apache.turbine.test", Class: "BaseTestCase", Label: "BaseTestCase()", URL: "%3Cinit%3E()"},
		{Package: "org.apache.turbine.test", Class: "BaseTestCase", Label: "readPropertiesFile()"},
		{Package: "org.apache.turbine.pipeline", Class: "PipelineTest.Worker", Label: "invoke()"},
	}
}

// pageAnchors serves an anchor set keyed by the page body.
func pageAnchors(html string) (map[string]bool, error) {
	set := make(map[string]bool)
	for _, a := range strings.Split(html, ",") {
		set[a] = true
	}
	return set, nil
}

func TestChecker_Check(t *testing.T) {
	t.Parallel()

	t.Run("fetches each page once and reports missing anchors", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		fetched := make(map[string]int)
		c := &check.Checker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					mu.Lock()
					fetched[url]++
					mu.Unlock()
					if strings.HasSuffix(url, "BaseTestCase.html") {
						return "<init>(),readPropertiesFile()", nil
					}
					return "run()", nil
				},
			},
			Anchors:     &mock.AnchorExtractor{AnchorsFn: pageAnchors},
			Concurrency: 2,
			RetryDelays: []time.Duration{},
		}

		report, err := c.Check(context.Background(), base, checkMembers(), nil)

		require.NoError(t, err)
		assert.Equal(t, 2, report.Pages)
		assert.Equal(t, 3, report.Checked)
		require.Len(t, report.Missing, 1)
		assert.Equal(t, "invoke()", report.Missing[0].Label)
		assert.Empty(t, report.Failed)
		assert.False(t, report.OK())
		assert.Equal(t, map[string]int{
			base + "org/apache/turbine/test/BaseTestCase.html":            1,
			base + "org/apache/turbine/pipeline/PipelineTest.Worker.html": 1,
		}, fetched)
	})

	t.Run("reports failed pages and skips their members", func(t *testing.T) {
		t.Parallel()

		c := &check.Checker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if strings.Contains(url, "pipeline") {
						return "", javadex.Errorf(javadex.ENOTFOUND, "not found: %s", url)
					}
					return "<init>(),readPropertiesFile()", nil
				},
			},
			Anchors:     &mock.AnchorExtractor{AnchorsFn: pageAnchors},
			RetryDelays: []time.Duration{0, 0},
		}

		report, err := c.Check(context.Background(), base, checkMembers(), nil)

		require.NoError(t, err)
		assert.Equal(t, 2, report.Checked)
		assert.Empty(t, report.Missing)
		require.Len(t, report.Failed, 1)
		assert.Equal(t, base+"org/apache/turbine/pipeline/PipelineTest.Worker.html", report.Failed[0].URL)
		assert.Equal(t, 1, report.Failed[0].Members)
		assert.Equal(t, javadex.ENOTFOUND, javadex.ErrorCode(report.Failed[0].Err))
	})

	t.Run("retries transient fetch errors", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		attempts := 0
		c := &check.Checker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					mu.Lock()
					defer mu.Unlock()
					attempts++
					if attempts < 3 {
						return "", javadex.Errorf(javadex.EUNAVAILABLE, "HTTP 503")
					}
					return "invoke()", nil
				},
			},
			Anchors:     &mock.AnchorExtractor{AnchorsFn: pageAnchors},
			RetryDelays: []time.Duration{0, 0, 0},
		}

		report, err := c.Check(context.Background(), base, checkMembers()[2:], nil)

		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.Equal(t, 3, attempts)
	})

	t.Run("waits on the host limiter for every page", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var hosts []string
		c := &check.Checker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", nil
				},
			},
			Anchors: &mock.AnchorExtractor{AnchorsFn: pageAnchors},
			RateLimiter: &mock.HostLimiter{
				WaitFn: func(_ context.Context, host string) error {
					mu.Lock()
					hosts = append(hosts, host)
					mu.Unlock()
					return nil
				},
			},
		}

		_, err := c.Check(context.Background(), base, checkMembers(), nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"turbine.apache.org", "turbine.apache.org"}, hosts)
	})

	t.Run("emits progress events", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var events []check.ProgressEvent
		c := &check.Checker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<init>(),readPropertiesFile(),invoke()", nil
				},
			},
			Anchors: &mock.AnchorExtractor{AnchorsFn: pageAnchors},
		}

		_, err := c.Check(context.Background(), base, checkMembers(), func(e check.ProgressEvent) {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, check.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, check.ProgressCompleted, events[1].Type)
		assert.Equal(t, check.ProgressCompleted, events[2].Type)
		assert.Equal(t, 2, events[2].Completed)
		assert.Equal(t, check.ProgressFinished, events[3].Type)
	})

	t.Run("returns the context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := &check.Checker{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, _ string) (string, error) {
					return "", ctx.Err()
				},
			},
			Anchors: &mock.AnchorExtractor{AnchorsFn: pageAnchors},
			RateLimiter: &mock.HostLimiter{
				WaitFn: func(ctx context.Context, _ string) error {
					return ctx.Err()
				},
			},
		}

		_, err := c.Check(ctx, base, checkMembers(), nil)

		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("rejects a non-http base", func(t *testing.T) {
		t.Parallel()

		c := &check.Checker{}
		_, err := c.Check(context.Background(), "apidocs/", checkMembers(), nil)

		assert.Equal(t, javadex.EINVALID, javadex.ErrorCode(err))
	})

	t.Run("returns an empty report for no members", func(t *testing.T) {
		t.Parallel()

		c := &check.Checker{}
		report, err := c.Check(context.Background(), base, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, report.Pages)
		assert.True(t, report.OK())
	})
}
