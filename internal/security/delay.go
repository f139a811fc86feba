package security

import (
	"context"
	"time"
)

// WaitMinimumDelay blocks for at least d before returning.  The booking
// flow always waits this floor after all checks pass and before issuing
// the create call; it is deliberate friction against automated
// submissions, not a retry or backoff.  Negative durations wait zero.
// Context cancellation aborts the wait and returns the context's error.
func WaitMinimumDelay(ctx context.Context, d time.Duration) error {
	if d < 0 {
		d = 0
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
