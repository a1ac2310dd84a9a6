// Package check verifies member anchors against the rendered class pages
// of a published javadoc site.
package check

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/javadex"
	jhttp "github.com/fwojciec/javadex/http"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched at once when the
// Checker does not set one.
const DefaultConcurrency = 10

// Checker fetches each class page referenced by an index once and confirms
// that every member's anchor exists on it.
type Checker struct {
	Fetcher     javadex.Fetcher
	Anchors     javadex.AnchorExtractor
	RateLimiter javadex.HostLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// Report holds the outcome of a check.
type Report struct {
	Pages   int
	Checked int
	Missing []*javadex.Member
	Failed  []PageError
}

// OK reports whether every member was found and every page was fetched.
func (r *Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Failed) == 0
}

// PageError records a page that could not be fetched or parsed.
type PageError struct {
	URL     string
	Members int
	Err     error
}

func (e PageError) Error() string {
	return fmt.Sprintf("%s: %v", e.URL, e.Err)
}

// ProgressEvent reports progress during a check.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Missing   int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting check progress.
type ProgressFunc func(event ProgressEvent)

// page groups the members documented on one class page.
type page struct {
	position int
	path     string
	url      string
	members  []*javadex.Member
}

// pageResult holds the outcome of checking a single page.
type pageResult struct {
	page    *page
	missing []*javadex.Member
	err     error
}

// Check resolves every member's page against baseURL and verifies its
// anchor. Pages are reported in the order they first appear in members.
func (c *Checker) Check(ctx context.Context, baseURL string, members []*javadex.Member, progress ProgressFunc) (*Report, error) {
	if err := jhttp.ValidateBase(baseURL); err != nil {
		return nil, err
	}

	pages, err := groupPages(baseURL, members)
	if err != nil {
		return nil, err
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult, len(pages))

	var completed atomic.Int64
	total := len(pages)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, p := range pages {
			g.Go(func() error {
				resultCh <- c.checkPage(gctx, p)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, len(pages))
	for result := range resultCh {
		completed.Add(1)
		results[result.page.position] = result

		if progress == nil {
			continue
		}
		if result.err != nil {
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.page.url,
				Error:     result.err,
			})
		} else {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.page.url,
				Missing:   len(result.missing),
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Pages: total}
	for _, result := range results {
		if result.err != nil {
			report.Failed = append(report.Failed, PageError{
				URL:     result.page.url,
				Members: len(result.page.members),
				Err:     result.err,
			})
			continue
		}
		report.Checked += len(result.page.members)
		report.Missing = append(report.Missing, result.missing...)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
			Missing:   len(report.Missing),
		})
	}

	return report, nil
}

// checkPage fetches one page and collects the members whose anchor it lacks.
func (c *Checker) checkPage(ctx context.Context, p *page) pageResult {
	result := pageResult{page: p}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, jhttp.Host(p.url)); err != nil {
			result.err = err
			return result
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, p.url, c.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.err = err
		return result
	}

	anchors, err := c.Anchors.Anchors(html)
	if err != nil {
		result.err = err
		return result
	}

	for _, m := range p.members {
		anchor, err := m.Anchor()
		if err != nil || !anchors[anchor] {
			result.missing = append(result.missing, m)
		}
	}
	return result
}

// groupPages buckets members by class page, keeping first-seen order.
func groupPages(baseURL string, members []*javadex.Member) ([]*page, error) {
	byPath := make(map[string]*page)
	var pages []*page
	for _, m := range members {
		path := m.PagePath()
		p, ok := byPath[path]
		if !ok {
			u, err := jhttp.Resolve(baseURL, path)
			if err != nil {
				return nil, err
			}
			p = &page{position: len(pages), path: path, url: u}
			byPath[path] = p
			pages = append(pages, p)
		}
		p.members = append(p.members, m)
	}
	return pages, nil
}
