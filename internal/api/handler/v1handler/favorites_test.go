package v1handler_test

import (
	"errors"
	"net/http"
	"testing"

	"lunchradar/pkg/domain"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestListFavorites_SortsIDs(t *testing.T) {
	e := newTestEnv(t)

	e.store.EXPECT().FavoriteIDs(gomock.Any()).
		Return(domain.FavoriteIDSet{"p2": {}, "p1": {}}, nil)

	rec := e.do(http.MethodGet, "/v1/favorites", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		IDs []string `json:"ids"`
	}
	decodeBody(t, rec, &body)
	require.Equal(t, []string{"p1", "p2"}, body.IDs)
}

func TestListFavorites_StorageErrorIsInternal(t *testing.T) {
	e := newTestEnv(t)

	e.store.EXPECT().FavoriteIDs(gomock.Any()).Return(nil, errors.New("boom"))

	rec := e.do(http.MethodGet, "/v1/favorites", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	require.Equal(t, "INTERNAL", body.Code)
	// internal causes are not leaked
	require.Equal(t, "internal error", body.Message)
}

func TestAddFavorite_NoContent(t *testing.T) {
	e := newTestEnv(t)

	e.store.EXPECT().AddFavorite(gomock.Any(), domain.PlaceID("p1")).Return(nil)

	rec := e.do(http.MethodPut, "/v1/favorites/p1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRemoveFavorite_NoContent(t *testing.T) {
	e := newTestEnv(t)

	e.store.EXPECT().RemoveFavorite(gomock.Any(), domain.PlaceID("p1")).Return(true, nil)

	rec := e.do(http.MethodDelete, "/v1/favorites/p1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRemoveFavorite_MissingIsNotFound(t *testing.T) {
	e := newTestEnv(t)

	e.store.EXPECT().RemoveFavorite(gomock.Any(), domain.PlaceID("missing")).Return(false, nil)

	rec := e.do(http.MethodDelete, "/v1/favorites/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Code string `json:"code"`
	}
	decodeBody(t, rec, &body)
	require.Equal(t, "NOT_FOUND", body.Code)
}
