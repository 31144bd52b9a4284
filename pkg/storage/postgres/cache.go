package postgres

import (
	"context"
	"fmt"
	"math"
	"time"

	"lunchradar/pkg/domain"
	"lunchradar/pkg/storage"

	"github.com/doug-martin/goqu/v9"
)

const cacheTable = "places_cache"

// cellPrecision controls how coordinates are rounded into cache cells. Three
// decimal places is roughly a 110m grid, coarse enough that GPS jitter maps
// to the same cell and fine enough that distinct blocks do not collide.
const cellPrecision = 1000

// CacheCellKey is the rounded form of a storage.CacheKey used as the cache
// row identity.
type CacheCellKey struct {
	Lat          float64
	Lng          float64
	RadiusMeters int
}

// NewCacheCellKey rounds the given search key onto the cache grid.
func NewCacheCellKey(key storage.CacheKey) CacheCellKey {
	round := func(v float64) float64 {
		return math.Round(v*cellPrecision) / cellPrecision
	}

	return CacheCellKey{
		Lat:          round(key.Location.Lat),
		Lng:          round(key.Location.Lng),
		RadiusMeters: key.RadiusMeters,
	}
}

// ID returns the stable row identifier for this cell.
func (k CacheCellKey) ID() string {
	return fmt.Sprintf("%.3f:%.3f:%d", k.Lat, k.Lng, k.RadiusMeters)
}

// ReadPlaces returns the cached places for the cell covering the given key.
// A missing cell is a plain miss and yields an empty slice with no error.
func (p *PgSQL) ReadPlaces(ctx context.Context, key storage.CacheKey) ([]domain.Place, error) {
	var row PgCacheCell
	found, err := p.Builder.From(cacheTable).
		Where(goqu.C("cell_id").Eq(NewCacheCellKey(key).ID())).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not read places cache: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// WritePlaces replaces the cached places for the cell covering the given key.
func (p *PgSQL) WritePlaces(ctx context.Context, key storage.CacheKey, places []domain.Place) error {
	var row PgCacheCell
	if err := row.FromDomain(NewCacheCellKey(key), places); err != nil {
		return err
	}

	if _, err := p.Builder.Insert(cacheTable).
		Rows(row).
		OnConflict(goqu.DoUpdate("cell_id", goqu.Record{
			"places":    row.Places,
			"stored_at": row.StoredAt,
		})).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not write places cache: %w", err)
	}

	return nil
}

// PrunePlaces deletes cache cells stored before now minus olderThan and
// returns the number of removed cells.
func (p *PgSQL) PrunePlaces(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	res, err := p.Builder.Delete(cacheTable).
		Where(goqu.C("stored_at").Lt(cutoff)).
		Executor().ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not prune places cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not get affected rows: %w", err)
	}

	return n, nil
}
