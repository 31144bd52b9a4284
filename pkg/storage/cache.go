package storage

import (
	"context"
	"time"

	"lunchradar/pkg/domain"
)

// CacheKey identifies a cached search cell. Coordinates are rounded by the
// implementation so nearby queries share an entry; the radius participates in
// the key because a wider search is not a superset guarantee at the provider.
type CacheKey struct {
	Location     domain.LocationPoint
	RadiusMeters int
}

// CacheStorage defines the best-effort local snapshot of places per search
// cell. A miss is not an error: ReadPlaces returns an empty slice. Genuine
// I/O failures are returned as errors and classified by the caller.
type CacheStorage interface {
	// ReadPlaces returns the cached places for the given cell, or an empty
	// slice on miss.
	ReadPlaces(ctx context.Context, key CacheKey) ([]domain.Place, error)
	// WritePlaces replaces the cached places for the given cell.
	WritePlaces(ctx context.Context, key CacheKey, places []domain.Place) error
	// PrunePlaces deletes cache entries older than the given age and returns
	// how many cells were removed.
	PrunePlaces(ctx context.Context, olderThan time.Duration) (int64, error)
}
