package pipeline

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"lunchradar/pkg/domain"
)

// ThrottledLocations subscribes to the location source and forwards only
// significant moves. Updates are rate limited to one per throttle interval
// with latest-wins conflation, and a forwarded point must be at least the
// distance threshold away from the previously forwarded one. Nil updates
// (no fix yet) are dropped.
func (c *coordinator) ThrottledLocations(ctx context.Context) <-chan domain.LocationPoint {
	out := make(chan domain.LocationPoint)

	stageCtx, cancel := context.WithCancel(ctx)
	unregister := c.registerStage(cancel)
	updates, unsubscribe := c.deps.Location.Subscribe()

	go func() {
		defer close(out)
		defer unregister()
		defer cancel()
		defer unsubscribe()

		limiter := rate.NewLimiter(rate.Every(c.options.ThrottleInterval), 1)

		var (
			lastForwarded *domain.LocationPoint
			pending       *domain.LocationPoint
		)

		timer := time.NewTimer(c.options.ThrottleInterval)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		forward := func(p domain.LocationPoint) {
			if lastForwarded != nil &&
				lastForwarded.DistanceMeters(p) < c.options.DistanceThresholdMeters {
				return
			}

			select {
			case out <- p:
				cp := p
				lastForwarded = &cp
			case <-stageCtx.Done():
			}
		}

		for {
			select {
			case p, ok := <-updates:
				if !ok {
					return
				}
				if p == nil {
					continue
				}
				if pending != nil {
					// a slot is already scheduled; conflate to the newest point
					cp := *p
					pending = &cp

					continue
				}
				res := limiter.Reserve()
				if d := res.Delay(); d > 0 {
					cp := *p
					pending = &cp
					timer.Reset(d)

					continue
				}
				forward(*p)
			case <-timer.C:
				if pending != nil {
					p := *pending
					pending = nil
					forward(p)
				}
			case <-stageCtx.Done():
				return
			}
		}
	}()

	return out
}
