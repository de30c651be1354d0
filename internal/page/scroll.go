package page

import (
	"context"
	"time"
)

// Wait blocks for d or until ctx is done.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ScrollToEnd scrolls down in step increments, pausing between moves, until
// the page height stops growing after a full pass. Lazy listings load more
// entries as the viewport approaches the bottom.
func ScrollToEnd(ctx context.Context, d Driver, step int, pause time.Duration) error {
	if step <= 0 {
		step = 200
	}
	metrics, err := d.ScrollMetrics(ctx)
	if err != nil {
		return err
	}
	last := metrics.Height
	position := 0
	for {
		for position < last {
			if err := d.ScrollTo(ctx, position); err != nil {
				return err
			}
			if err := Wait(ctx, pause); err != nil {
				return err
			}
			position += step
		}
		metrics, err = d.ScrollMetrics(ctx)
		if err != nil {
			return err
		}
		if metrics.Height == last {
			return nil
		}
		last = metrics.Height
	}
}
