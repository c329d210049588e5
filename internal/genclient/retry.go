package genclient

import (
	"context"
	"time"
)

// defaultBackoff is the delay schedule between attempts. Deliberately
// jitter-free so worst-case latency stays predictable; tune per use case
// through Options.Backoff if lockstep retries become a problem at volume.
var defaultBackoff = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// retryPolicy runs an operation up to maxAttempts times, sleeping the
// scheduled backoff between attempts. It is transport-agnostic; tests drive
// it with fake operations and an instant sleep.
type retryPolicy struct {
	maxAttempts int
	backoff     []time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

func newRetryPolicy(maxAttempts int, backoff []time.Duration) retryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if len(backoff) == 0 {
		backoff = defaultBackoff
	}
	return retryPolicy{
		maxAttempts: maxAttempts,
		backoff:     backoff,
		sleep:       sleepCtx,
	}
}

// delay returns the backoff before attempt n (1-based; attempt 1 has none).
// The schedule's last entry repeats if attempts outnumber entries.
func (p retryPolicy) delay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	idx := attempt - 2
	if idx >= len(p.backoff) {
		idx = len(p.backoff) - 1
	}
	return p.backoff[idx]
}

// do runs fn until it succeeds, exhausts attempts, or hits a non-retryable
// error. It returns the last result, the number of attempts issued, and the
// final error.
func (p retryPolicy) do(ctx context.Context, fn func() (string, error), shouldRetry func(error) bool) (string, int, error) {
	var lastErr error

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if d := p.delay(attempt); d > 0 {
			if err := p.sleep(ctx, d); err != nil {
				return "", attempt - 1, err
			}
		}

		text, err := fn()
		if err == nil {
			return text, attempt, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return "", attempt, lastErr
		}
	}

	return "", p.maxAttempts, lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
