package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/circulars"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is called before each retry with the attempt about to be made
// (2 for the first retry) and the error that caused it.
type RetryFunc func(url string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Retryable reports whether another attempt could succeed where err failed.
// Errors with an application code (a missing page, a rejected request, a
// closed fetcher) are final; transport and server errors are not.
func Retryable(err error) bool {
	switch circulars.ErrorCode(err) {
	case circulars.ENOTFOUND, circulars.EINVALID:
		return false
	}
	return true
}

// FetchWithRetryDelays calls fetch until it succeeds, waiting delays[i]
// before retry i+1, so at most len(delays)+1 attempts are made. A final
// error ends the loop at once. A cancelled context ends it with the
// context's error rather than the last fetch error.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, onRetry RetryFunc, delays []time.Duration) (string, error) {
	for attempt := 0; ; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if attempt >= len(delays) || !Retryable(err) {
			return "", err
		}

		if onRetry != nil {
			onRetry(url, attempt+2, err)
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
}
