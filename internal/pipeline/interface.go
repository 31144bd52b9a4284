package pipeline

import (
	"context"
	"time"

	"lunchradar/internal/config"
	"lunchradar/pkg/domain"
	"lunchradar/pkg/location"
	"lunchradar/pkg/places"
	"lunchradar/pkg/storage"
)

// FavoritesSource provides a point-in-time snapshot of favorited place IDs.
// The snapshot is read once per merge run so every place in a single result
// list is stamped against the same favorites state.
type FavoritesSource interface {
	FavoriteIDs(ctx context.Context) (domain.FavoriteIDSet, error)
}

// CacheSource reads and writes result lists keyed by location cell.
type CacheSource interface {
	ReadPlaces(ctx context.Context, key storage.CacheKey) ([]domain.Place, error)
	WritePlaces(ctx context.Context, key storage.CacheKey, places []domain.Place) error
}

// Deps are the external collaborators a coordinator fans out to. Jobs is
// optional; when nil no background cache refresh is enqueued.
type Deps struct {
	Network   places.Client
	Cache     CacheSource
	Favorites FavoritesSource
	Location  location.Source
	Jobs      storage.JobStorage
}

// Options configure the pipeline stages and merge runs.
// These settings are typically derived from application configuration.
type Options struct {
	// DebounceInterval is the quiet period required before a query becomes an intent.
	DebounceInterval time.Duration
	// ThrottleInterval is the minimum spacing between forwarded location updates.
	ThrottleInterval time.Duration
	// DistanceThresholdMeters suppresses location updates closer than this to the
	// previously forwarded point.
	DistanceThresholdMeters float64
	// NetworkRetries is the number of retries after a failed network fetch.
	NetworkRetries uint64
	// RetryBackoff is the constant delay between network retries.
	RetryBackoff time.Duration
	// RunTimeout bounds a single merge run.
	RunTimeout time.Duration
	// DefaultRadiusMeters is used when a caller passes a non-positive radius.
	DefaultRadiusMeters int
	// ErrorLogSize caps the observable error log.
	ErrorLogSize int
	// CacheTTL is the uniqueness window for background refresh jobs.
	CacheTTL time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		DebounceInterval:        cfg.Pipeline.DebounceInterval,
		ThrottleInterval:        cfg.Pipeline.ThrottleInterval,
		DistanceThresholdMeters: cfg.Pipeline.DistanceThresholdMeters,
		NetworkRetries:          cfg.Pipeline.NetworkRetries,
		RetryBackoff:            cfg.Pipeline.RetryBackoff,
		RunTimeout:              cfg.Pipeline.RunTimeout,
		DefaultRadiusMeters:     cfg.Pipeline.DefaultRadiusMeters,
		ErrorLogSize:            cfg.Pipeline.ErrorLogSize,
		CacheTTL:                cfg.Pipeline.CacheTTL,
	}
}

// Coordinator owns every pipeline stage and the observable state they feed.
// All state transitions go through a single owner goroutine, so methods are
// safe to call from any goroutine.
type Coordinator interface {
	// Execute runs one merge cycle for the given intent and returns the
	// published list. A run that was superseded mid-flight returns the newer
	// run's published list rather than its own. Source failures never surface
	// as errors here; they are recorded in the error log and reflected in the
	// status. Starting a run supersedes any run still in flight.
	Execute(ctx context.Context, intent domain.SearchIntent, radiusMeters int) []domain.Place

	// DebounceQueries consumes a raw query stream and emits a search intent once
	// the stream has been quiet for the debounce interval. Blank queries and
	// consecutive duplicates are suppressed. The returned channel is closed when
	// ctx ends or the input closes.
	DebounceQueries(ctx context.Context, queries <-chan string) <-chan domain.SearchIntent

	// DebouncedSearch consumes a raw query stream, debounces it into intents and
	// executes a merge run per intent. The returned channel carries the result
	// list of each run and is closed when ctx ends or the input closes.
	DebouncedSearch(ctx context.Context, queries <-chan string, radiusMeters int) <-chan []domain.Place

	// ThrottledLocations subscribes to the location source and forwards only
	// significant moves, rate limited with latest-wins conflation. The returned
	// channel is closed when ctx ends.
	ThrottledLocations(ctx context.Context) <-chan domain.LocationPoint

	// Results returns the last published result list.
	Results() []domain.Place
	// Status returns the current pipeline status.
	Status() Status
	// Errors returns the recovered source failures, most recent first.
	Errors() []Error

	// WatchStatus streams status transitions. The cancel func must be called to
	// release the subscription.
	WatchStatus() (<-chan Status, func())
	// WatchResults streams published result lists. The cancel func must be
	// called to release the subscription.
	WatchResults() (<-chan []domain.Place, func())

	// CancelAll discards in-flight work across every stage and resets the
	// status to idle without recording a failure. Safe to call repeatedly.
	CancelAll()
	// Close cancels all work and stops the owner goroutine.
	Close()
}
