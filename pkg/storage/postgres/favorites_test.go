package postgres_test

import (
	"context"
	"testing"

	"lunchradar/pkg/domain"

	"github.com/stretchr/testify/require"
)

func TestFavorites_AddListRemove(t *testing.T) {
	strg := setupTestDB(t)
	ctx := context.Background()

	ids, err := strg.FavoriteIDs(ctx)
	require.NoError(t, err)
	require.Empty(t, ids)

	require.NoError(t, strg.AddFavorite(ctx, "p1"))
	require.NoError(t, strg.AddFavorite(ctx, "p2"))
	// re-adding is a no-op
	require.NoError(t, strg.AddFavorite(ctx, "p1"))

	ids, err = strg.FavoriteIDs(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	require.True(t, ids.Contains("p1"))
	require.True(t, ids.Contains("p2"))

	removed, err := strg.RemoveFavorite(ctx, "p1")
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = strg.RemoveFavorite(ctx, "p1")
	require.NoError(t, err)
	require.False(t, removed)

	ids, err = strg.FavoriteIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.FavoriteIDSet{"p2": {}}, ids)
}
