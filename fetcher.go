package javadex

import "context"

// Fetcher retrieves documents (index files and class pages) from URLs.
type Fetcher interface {
	// Fetch returns the body of the document at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// HostLimiter provides per-host rate limiting.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
