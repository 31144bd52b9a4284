package pipeline

import (
	"context"
	"errors"
	"time"

	"lunchradar/pkg/domain"
	"lunchradar/pkg/logger"
	"lunchradar/pkg/places"
	"lunchradar/pkg/serrors"
	"lunchradar/pkg/storage"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Execute runs one merge cycle: it claims the next generation (superseding any
// run in flight), fans out to the network, cache and favorites concurrently,
// joins at a barrier and publishes the merged list through the state owner.
func (c *coordinator) Execute(ctx context.Context, intent domain.SearchIntent, radiusMeters int) []domain.Place {
	if radiusMeters <= 0 {
		radiusMeters = c.options.DefaultRadiusMeters
	}

	gen, runCtx, handle := c.beginGeneration(ctx)
	defer c.endGeneration(handle)

	started := time.Now()
	c.owner.send(func(s *ownerState) {
		s.beginRun(gen)
	})

	loc, ok := c.deps.Location.Latest()
	if !ok {
		// precondition failure: resolve to the last known list untouched
		c.recordError(gen, serrors.ErrLocation, errors.New("no known location"))
		c.recordError(gen, serrors.ErrUnavailable, errors.New("pipeline could not start"))
		c.owner.call(func(s *ownerState) {
			s.settleUnavailable(gen, serrors.ErrUnavailable.Error())
		})
		runsTotal.WithLabelValues("unavailable").Inc()

		return c.Results()
	}

	key := storage.CacheKey{Location: loc, RadiusMeters: radiusMeters}

	var (
		networkPlaces []domain.Place
		networkErr    error
		cachedPlaces  []domain.Place
		cacheErr      error
		favorites     domain.FavoriteIDSet
	)

	// sources must not cancel each other; each goroutine keeps its failure
	// local and the group is only used as a barrier
	var g errgroup.Group
	g.Go(func() error {
		networkPlaces, networkErr = c.fetchNetwork(runCtx, intent, loc, radiusMeters)

		return nil
	})
	g.Go(func() error {
		cachedPlaces, cacheErr = c.deps.Cache.ReadPlaces(runCtx, key)

		return nil
	})
	g.Go(func() error {
		ids, err := c.deps.Favorites.FavoriteIDs(runCtx)
		if err != nil {
			// favorites enrichment is cosmetic; degrade to an empty set
			logger.Warn(runCtx, "could not read favorites snapshot", zap.Error(err))
			ids = nil
		}
		favorites = ids

		return nil
	})
	_ = g.Wait()

	if networkErr != nil {
		c.recordError(gen, serrors.ErrNetwork, networkErr)
	}
	if cacheErr != nil {
		c.recordError(gen, serrors.ErrCache, cacheErr)
	}

	merged := mergePlaces(networkPlaces, cachedPlaces, favorites)

	if networkErr == nil && intent.IsBlank() {
		c.writeThrough(runCtx, key, networkPlaces)
	}

	failed := networkErr != nil || cacheErr != nil
	var (
		applied  bool
		resolved []domain.Place
	)
	c.owner.call(func(s *ownerState) {
		applied = s.settle(gen, merged, failed, failureReason(networkErr, cacheErr))
		// a superseded run hands back the published list, not its own
		resolved = s.results
	})

	outcome := "success"
	switch {
	case !applied:
		outcome = "superseded"
	case failed:
		outcome = "failed"
	}
	runsTotal.WithLabelValues(outcome).Inc()
	runDuration.Observe(time.Since(started).Seconds())

	return resolved
}

// fetchNetwork performs the remote search with bounded retries. Client
// mistakes are not retried since they will not heal.
func (c *coordinator) fetchNetwork(ctx context.Context,
	intent domain.SearchIntent,
	loc domain.LocationPoint,
	radiusMeters int) ([]domain.Place, error) {
	var page places.SearchPage
	backoff := retry.WithMaxRetries(c.options.NetworkRetries, retry.NewConstant(c.options.RetryBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		page, err = c.deps.Network.Search(ctx, places.SearchRequest{
			Query:        intent.Query,
			Location:     loc,
			RadiusMeters: radiusMeters,
			PageToken:    intent.PageToken,
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, serrors.ErrBadRequest) {
			return err
		}

		return retry.RetryableError(err)
	})
	if err != nil {
		return nil, err
	}

	return page.Places, nil
}

// writeThrough persists a fresh network list into the cache cell and enqueues
// a background refresh for it. Both are best effort; a failure here must not
// fail an otherwise successful run.
func (c *coordinator) writeThrough(ctx context.Context, key storage.CacheKey, list []domain.Place) {
	if err := c.deps.Cache.WritePlaces(ctx, key, list); err != nil {
		logger.Warn(ctx, "could not write places cache", zap.Error(err))

		return
	}

	if c.deps.Jobs == nil {
		return
	}
	added, err := c.deps.Jobs.AddJob(ctx, NewRefreshJobArgs(key, c.options.CacheTTL), nil)
	if err != nil {
		logger.Warn(ctx, "could not enqueue cache refresh", zap.Error(err))

		return
	}
	if added {
		logger.Debug(ctx, "enqueued cache refresh",
			zap.Float64("lat", key.Location.Lat),
			zap.Float64("lng", key.Location.Lng),
			zap.Int("radiusMeters", key.RadiusMeters))
	}
}

// recordError appends a recovered source failure to the error log of the run
// identified by gen. Failures from superseded runs are dropped.
func (c *coordinator) recordError(gen uint64, k serrors.Kind, cause error) {
	sourceFailures.WithLabelValues(k.Error()).Inc()

	e := Error{Kind: k, Cause: cause, At: time.Now(), Generation: gen}
	c.owner.send(func(s *ownerState) {
		if gen == s.activeGen {
			s.recordError(e)
		}
	})
}

// mergePlaces joins the network and cache lists, dropping duplicates by place
// identity. Network entries win over cached ones, and cache-only extras keep
// their relative order after the network block. Every surviving place is
// stamped against the favorites snapshot.
func mergePlaces(network, cached []domain.Place, favorites domain.FavoriteIDSet) []domain.Place {
	merged := make([]domain.Place, 0, len(network)+len(cached))
	seen := make(map[domain.PlaceID]struct{}, len(network)+len(cached))

	for _, p := range network {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		p.Favorite = favorites.Contains(p.ID)
		merged = append(merged, p)
	}
	for _, p := range cached {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		p.Favorite = favorites.Contains(p.ID)
		merged = append(merged, p)
	}

	return merged
}

func failureReason(networkErr, cacheErr error) string {
	switch {
	case networkErr != nil && cacheErr != nil:
		return serrors.ErrNetwork.Error() + "," + serrors.ErrCache.Error()
	case networkErr != nil:
		return serrors.ErrNetwork.Error()
	case cacheErr != nil:
		return serrors.ErrCache.Error()
	default:
		return ""
	}
}
