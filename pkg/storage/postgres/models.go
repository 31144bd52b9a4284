package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"lunchradar/pkg/domain"
)

// PgFavorite is the row shape of the favorites table.
type PgFavorite struct {
	PlaceID   string    `db:"place_id"`
	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

// PgCacheCell is the row shape of the places_cache table. Each row holds one
// search cell's full result list as a jsonb document.
type PgCacheCell struct {
	CellID       string          `db:"cell_id"`
	Lat          float64         `db:"lat"`
	Lng          float64         `db:"lng"`
	RadiusMeters int             `db:"radius_meters"`
	Places       json.RawMessage `db:"places"`
	StoredAt     time.Time       `db:"stored_at"`
}

func (c *PgCacheCell) ToDomain() ([]domain.Place, error) {
	var places []domain.Place
	if err := json.Unmarshal(c.Places, &places); err != nil {
		return nil, fmt.Errorf("could not unmarshal cached places: %w", err)
	}

	return places, nil
}

func (c *PgCacheCell) FromDomain(key CacheCellKey, places []domain.Place) error {
	b, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("could not marshal places: %w", err)
	}

	*c = PgCacheCell{
		CellID:       key.ID(),
		Lat:          key.Lat,
		Lng:          key.Lng,
		RadiusMeters: key.RadiusMeters,
		Places:       b,
		StoredAt:     time.Now().UTC(),
	}

	return nil
}
