// Package http provides an HTTP-based implementation of javadex.Fetcher
// for retrieving index scripts and class pages from published javadoc sites.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/javadex"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps response bodies. Large javadoc member indexes
// run to a few megabytes.
const DefaultMaxBodySize = 64 << 20

// UserAgent is sent with every request.
const UserAgent = "javadex/1.0"

// Ensure Fetcher implements javadex.Fetcher at compile time.
var _ javadex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves documents from URLs using plain HTTP GET requests.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodySize sets the largest accepted response body in bytes.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of the document at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", javadex.Errorf(javadex.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", javadex.Errorf(javadex.ENOTFOUND, "HTTP 404 for %s", url)
	case resp.StatusCode != http.StatusOK:
		return "", javadex.Errorf(javadex.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > f.maxBodySize {
		return "", javadex.Errorf(javadex.EINVALID, "response from %s exceeds %d bytes", url, f.maxBodySize)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// IsURL reports whether s is an absolute http or https URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// BaseOf returns the directory URL of a document URL, with a trailing slash.
// Example: https://example.com/apidocs/member-search-index.js → https://example.com/apidocs/
func BaseOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", javadex.Errorf(javadex.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	if i := strings.LastIndexByte(u.Path, '/'); i >= 0 {
		u.Path = u.Path[:i+1]
	} else {
		u.Path = "/"
	}
	return u.String(), nil
}

// Resolve joins a page path onto a documentation base URL.
func Resolve(base, path string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", javadex.Errorf(javadex.EINVALID, "invalid base URL %q: %v", base, err)
	}
	if !strings.HasSuffix(b.Path, "/") {
		b.Path += "/"
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", javadex.Errorf(javadex.EINVALID, "invalid page path %q: %v", path, err)
	}
	return b.ResolveReference(ref).String(), nil
}

// Host returns the host of rawURL, or rawURL itself if it cannot be parsed.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// ValidateBase returns EINVALID unless base is an absolute http(s) URL.
func ValidateBase(base string) error {
	if !IsURL(base) {
		return javadex.Errorf(javadex.EINVALID, "documentation base %q must be an http(s) URL", base)
	}
	return nil
}
