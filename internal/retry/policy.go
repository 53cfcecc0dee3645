package retry

import (
	"context"
	"time"
)

// Policy describes a bounded retry schedule with exponential backoff.
// The same policy value can be shared across call sites; it carries no
// mutable state.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DelayFor returns the wait applied after the given failed attempt
// (1-based). The delay starts at BaseDelay, doubles per attempt and is
// capped at MaxDelay.
func (p Policy) DelayFor(attempt int) time.Duration {
	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// Do runs op up to MaxAttempts times, sleeping DelayFor between
// attempts. It stops on the first success; after the final attempt the
// last error is returned with no trailing wait. The attempt number
// passed to op is 1-based.
func (p Policy) Do(ctx context.Context, op func(attempt int) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(p.DelayFor(attempt - 1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err = op(attempt); err == nil {
			return nil
		}
	}

	return err
}
