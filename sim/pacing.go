package sim

import (
	"context"
	"time"
)

// Pacer is the injectable, cancellable delay abstraction. The pure step
// logic never depends on it; the orchestrator only calls Wait at its
// suspension points (fight intro, knockdown counts, inter-round rest), so
// batch and real-time runs produce identical simulation outcomes.
type Pacer interface {
	Wait(ctx context.Context, d time.Duration) error
}

// RealtimePacer sleeps for the requested duration, honoring cancellation.
type RealtimePacer struct{}

func (RealtimePacer) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InstantPacer returns immediately; batch mode.
type InstantPacer struct{}

func (InstantPacer) Wait(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}
