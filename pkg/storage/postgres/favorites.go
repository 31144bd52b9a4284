package postgres

import (
	"context"
	"fmt"

	"lunchradar/pkg/domain"

	"github.com/doug-martin/goqu/v9"
)

const favoritesTable = "favorites"

// FavoriteIDs returns a snapshot of all favorited place IDs.
func (p *PgSQL) FavoriteIDs(ctx context.Context) (domain.FavoriteIDSet, error) {
	var rows []PgFavorite
	if err := p.Builder.From(favoritesTable).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not read favorites: %w", err)
	}

	out := make(domain.FavoriteIDSet, len(rows))
	for _, r := range rows {
		out[domain.PlaceID(r.PlaceID)] = struct{}{}
	}

	return out, nil
}

// AddFavorite marks the given place as favorited. Re-adding an existing
// favorite is a no-op.
func (p *PgSQL) AddFavorite(ctx context.Context, id domain.PlaceID) error {
	if _, err := p.Builder.Insert(favoritesTable).
		Rows(PgFavorite{PlaceID: string(id)}).
		OnConflict(goqu.DoNothing()).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not add favorite: %w", err)
	}

	return nil
}

// RemoveFavorite unmarks the given place. It returns false when the place was
// not favorited.
func (p *PgSQL) RemoveFavorite(ctx context.Context, id domain.PlaceID) (bool, error) {
	res, err := p.Builder.Delete(favoritesTable).
		Where(goqu.C("place_id").Eq(string(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not remove favorite: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not get affected rows: %w", err)
	}

	return n > 0, nil
}
