// Package retry implements the bounded exponential backoff used around
// transient dependency calls (embedding, graph, vector search, generation):
// up to three attempts, starting at a 1s delay and doubling, capped at 4s.
// Grounded on the teacher's llm rate-limit middleware's context.Done/
// time.After cooldown pattern; kept on the standard library since the
// policy is a handful of time.After selects, not a distinct ecosystem
// concern a third-party retry library would meaningfully simplify.
package retry

import (
	"context"
	"time"

	"github.com/lookatitude/beluga-ai/core"
)

const (
	maxAttempts  = 3
	initialDelay = time.Second
	maxDelay     = 4 * time.Second
)

// Do calls fn up to maxAttempts times, retrying only when the returned error
// is retryable per core.IsRetryable, backing off 1s then 2s (capped at 4s)
// between attempts. It returns the last error if every attempt fails, or
// immediately on a non-retryable error.
func Do(ctx context.Context, fn func(ctx context.Context) error) error {
	delay := initialDelay
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !core.IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == maxAttempts {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}

		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}

	return lastErr
}
