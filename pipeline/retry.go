package pipeline

import (
	"context"
	"time"

	"github.com/fwojciec/prospect"
)

// RenderFunc is the signature for a render function.
type RenderFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for render retries: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// RenderWithRetry attempts to render a URL, retrying after each delay in
// delays. An EUNAVAILABLE error is returned immediately since retrying
// cannot bring the renderer back. The logger, if provided, is called for
// each retry attempt.
func RenderWithRetry(ctx context.Context, url string, render RenderFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := render(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if prospect.ErrorCode(err) == prospect.EUNAVAILABLE || attempt >= maxAttempts-1 {
			break
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
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
