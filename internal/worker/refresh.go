package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lunchradar/internal/pipeline"
	"lunchradar/pkg/logger"
	"lunchradar/pkg/places"
	"lunchradar/pkg/serrors"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// rateLimitSnooze defers a refresh when the provider reports rate limiting.
// The provider does not expose a reset time, so a fixed backoff is used.
const rateLimitSnooze = time.Minute

// RefreshWorker is a River worker that re-fetches one cache cell from the
// place provider and overwrites the stored list. Cells are enqueued by the
// pipeline after every successful blank-query run, so frequently viewed areas
// stay warm without a request in the hot path.
type RefreshWorker struct {
	river.WorkerDefaults[pipeline.RefreshJobArgs]

	// network performs the provider search for the cell.
	network places.Client
	// cache receives the refreshed list.
	cache pipeline.CacheSource
}

// NewRefreshWorker constructs a RefreshWorker backed by the given provider and cache.
func NewRefreshWorker(network places.Client, cache pipeline.CacheSource) *RefreshWorker {
	return &RefreshWorker{
		network: network,
		cache:   cache,
	}
}

// Work executes a single refresh job: search the provider for the cell's
// location and replace the cached list. Provider rate limiting snoozes the
// job instead of burning retries.
func (w *RefreshWorker) Work(ctx context.Context, job *river.Job[pipeline.RefreshJobArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.Float64("lat", job.Args.Lat),
		zap.Float64("lng", job.Args.Lng),
		zap.Int("radiusMeters", job.Args.RadiusMeters))

	key := job.Args.CacheKey()

	page, err := w.network.Search(ctx, places.SearchRequest{
		Location:     key.Location,
		RadiusMeters: key.RadiusMeters,
	})
	if err != nil {
		logger.Error(ctx, "error refreshing cache cell", zap.Error(err))

		if errors.Is(err, serrors.ErrRateLimited) {
			return river.JobSnooze(rateLimitSnooze) //nolint: wrapcheck
		}

		return fmt.Errorf("could not refresh cache cell: %w", err)
	}

	if err := w.cache.WritePlaces(ctx, key, page.Places); err != nil {
		logger.Error(ctx, "error writing refreshed cache cell", zap.Error(err))

		return fmt.Errorf("could not write refreshed cache cell: %w", err)
	}

	logger.Info(ctx, "cache cell refreshed", zap.Int("places", len(page.Places)))

	return nil
}
