package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/phonecrawl"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// FetchWithRetryDelays fetches url, retrying transient failures once per
// entry in delays after sleeping for it.
//
// Only errors for which phonecrawl.IsTransient is true are retried; status
// and empty-body failures return after the first attempt. The limiter, if
// non-nil, is waited on before every retry so retries count toward the
// crawl's fetch rate; the caller paces the first attempt. The number of
// attempts made is returned alongside the result.
func FetchWithRetryDelays(
	ctx context.Context,
	url string,
	fetch FetchFunc,
	limiter phonecrawl.FetchLimiter,
	logger LogFunc,
	delays []time.Duration,
) (string, int, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	attempt := 0
	for attempt < maxAttempts {
		body, err := fetch(ctx, url)
		attempt++
		if err == nil {
			return body, attempt, nil
		}
		lastErr = err

		if !phonecrawl.IsTransient(err) || attempt >= maxAttempts {
			break
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+1, err)
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return "", attempt, lastErr
		case <-time.After(delays[attempt-1]):
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return "", attempt, lastErr
			}
		}
	}

	return "", attempt, lastErr
}
