// Package poll implements bounded polling of page conditions. Until waits for
// a condition to become true, Stable additionally requires it to stay true for
// a dwell period so that transient states are not acted upon.
package poll

import (
	"context"
	"errors"
	"time"

	"mailprov/pkg/serrors"
)

// Condition is evaluated on every tick. An error counts as "not yet" and is
// reported only if the wait eventually times out.
type Condition func(ctx context.Context) (bool, error)

// Until evaluates cond every interval until it returns true. It returns an
// ErrTimeout error once timeout has elapsed, or the context error when ctx is
// done first.
func Until(ctx context.Context, interval, timeout time.Duration, cond Condition) error {
	return Stable(ctx, interval, timeout, 0, cond)
}

// Stable evaluates cond every interval until it has held continuously for
// dwell. A single false observation restarts the dwell period.
func Stable(ctx context.Context, interval, timeout, dwell time.Duration, cond Condition) error {
	deadline := time.Now().Add(timeout)
	probeCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	var (
		since   time.Time
		lastErr error
	)
	for {
		ok, err := cond(probeCtx)
		now := time.Now()
		switch {
		case err != nil:
			if probeCtx.Err() == nil {
				lastErr = err
			}
			since = time.Time{}
		case ok:
			if since.IsZero() {
				since = now
			}
			if now.Sub(since) >= dwell {
				return nil
			}
		default:
			since = time.Time{}
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !now.Before(deadline) {
			return timeoutError(timeout, lastErr)
		}

		wait := interval
		if remaining := time.Until(deadline); remaining < wait {
			wait = remaining
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()

			return ctx.Err()
		case <-timer.C:
		}
	}
}

func timeoutError(timeout time.Duration, lastErr error) error {
	if lastErr == nil || errors.Is(lastErr, context.DeadlineExceeded) {
		return serrors.With(serrors.ErrTimeout, "condition not met within %s", timeout)
	}

	return serrors.Wrap(serrors.ErrTimeout, lastErr, "condition not met within %s", timeout)
}
