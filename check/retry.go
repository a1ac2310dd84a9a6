package check

import (
	"context"
	"time"

	"github.com/fwojciec/javadex"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for page fetch retries: 500ms, 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{500 * time.Millisecond, 1 * time.Second, 2 * time.Second}
}

// FetchWithRetryDelays fetches url, retrying after each delay in turn.
// Missing pages (ENOTFOUND) are not retried.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !retryable(err) {
			break
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	switch javadex.ErrorCode(err) {
	case javadex.ENOTFOUND, javadex.EINVALID:
		return false
	}
	return true
}
