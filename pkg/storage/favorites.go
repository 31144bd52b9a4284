package storage

import (
	"context"

	"lunchradar/pkg/domain"
)

// FavoriteStorage defines operations on the user's favorited place set. The
// pipeline only ever reads a snapshot of the IDs; mutation comes from the HTTP
// surface.
type FavoriteStorage interface {
	// FavoriteIDs returns a snapshot of all favorited place IDs.
	FavoriteIDs(ctx context.Context) (domain.FavoriteIDSet, error)
	// AddFavorite marks the given place as favorited. Adding an existing
	// favorite is a no-op.
	AddFavorite(ctx context.Context, id domain.PlaceID) error
	// RemoveFavorite unmarks the given place. It returns false when the place
	// was not favorited.
	RemoveFavorite(ctx context.Context, id domain.PlaceID) (bool, error)
}
