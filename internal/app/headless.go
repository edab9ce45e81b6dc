package app

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/llehouerou/ssai-innovid/internal/uiloop"
)

// RunHeadless drives a started Runtime without a terminal UI. The calling
// goroutine owns the Runtime; UI work drains on a second goroutine through
// q. It returns nil when the stream ends and ctx.Err() when cancelled.
func RunHeadless(ctx context.Context, rt *Runtime, q *uiloop.Queue, clk clock.Clock, interval time.Duration) error {
	if clk == nil {
		clk = clock.New()
	}
	if interval <= 0 {
		interval = TickInterval
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		_ = q.Run(runCtx)
	}()

	finish := func() {
		rt.Release()
		cancel()
		<-drained
		// Run may have exited before Release posted
		q.Drain()
	}

	ticker := clk.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			finish()
			return ctx.Err()
		case <-ticker.C:
			rt.Tick()
			if rt.Done() {
				finish()
				return nil
			}
		}
	}
}
