// Package clock provides cancellation-aware waiting helpers.
package clock

import (
	"context"
	"time"
)

// Wait blocks for d, or until ctx is canceled, in which case it returns
// the context's error.
func Wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
