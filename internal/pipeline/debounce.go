package pipeline

import (
	"context"
	"strings"
	"time"

	"lunchradar/pkg/domain"
)

// DebounceQueries turns a raw keystroke stream into search intents. An intent
// is emitted only after the stream has been quiet for the debounce interval,
// and only when the settled query differs from the previously emitted one.
// Blank queries are swallowed without emitting.
func (c *coordinator) DebounceQueries(ctx context.Context, queries <-chan string) <-chan domain.SearchIntent {
	out := make(chan domain.SearchIntent)

	stageCtx, cancel := context.WithCancel(ctx)
	unregister := c.registerStage(cancel)

	go func() {
		defer close(out)
		defer unregister()
		defer cancel()

		var (
			pending    string
			hasPending bool
			lastSent   string
			hasSent    bool
		)

		timer := time.NewTimer(c.options.DebounceInterval)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		emit := func() {
			if !hasPending {
				return
			}
			hasPending = false

			query := strings.TrimSpace(pending)
			if query == "" {
				return
			}
			if hasSent && query == lastSent {
				return
			}

			select {
			case out <- domain.SearchIntent{Query: query}:
				lastSent = query
				hasSent = true
			case <-stageCtx.Done():
			}
		}

		for {
			select {
			case q, ok := <-queries:
				if !ok {
					return
				}
				pending = q
				hasPending = true
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(c.options.DebounceInterval)
			case <-timer.C:
				emit()
			case <-stageCtx.Done():
				return
			}
		}
	}()

	return out
}

// DebouncedSearch composes the debounce stage with the merge engine: every
// settled intent triggers a run and the run's result list is forwarded.
func (c *coordinator) DebouncedSearch(ctx context.Context,
	queries <-chan string,
	radiusMeters int) <-chan []domain.Place {
	intents := c.DebounceQueries(ctx, queries)
	out := make(chan []domain.Place)

	go func() {
		defer close(out)

		for intent := range intents {
			results := c.Execute(ctx, intent, radiusMeters)
			select {
			case out <- results:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
