package v1handler_test

import (
	"context"
	"net/http"
	"testing"

	"lunchradar/pkg/domain"
	"lunchradar/pkg/places"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSearchPlaces_ReturnsMergedListAndStatus(t *testing.T) {
	e := newTestEnv(t)
	e.loc.Publish(&domain.LocationPoint{Lat: 37.7749, Lng: -122.4194})

	e.network.EXPECT().Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req places.SearchRequest) (places.SearchPage, error) {
			require.Equal(t, "tacos", req.Query)
			require.Equal(t, 500, req.RadiusMeters)

			return places.SearchPage{Places: []domain.Place{{ID: "p1", Name: "Taqueria"}}}, nil
		})
	e.store.EXPECT().ReadPlaces(gomock.Any(), gomock.Any()).Return(nil, nil)
	e.store.EXPECT().FavoriteIDs(gomock.Any()).Return(domain.FavoriteIDSet{"p1": {}}, nil)

	rec := e.do(http.MethodGet, "/v1/places/search?q=tacos", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status struct {
			Kind  string `json:"kind"`
			Count int    `json:"count"`
		} `json:"status"`
		Places []domain.Place `json:"places"`
	}
	decodeBody(t, rec, &body)
	require.Equal(t, "SUCCESS", body.Status.Kind)
	require.Equal(t, 1, body.Status.Count)
	require.Equal(t, []domain.Place{{ID: "p1", Name: "Taqueria", Favorite: true}}, body.Places)
}

func TestSearchPlaces_NoLocationReportsFailureWithEmptyList(t *testing.T) {
	e := newTestEnv(t)
	// no location fix: every source is left untouched

	rec := e.do(http.MethodGet, "/v1/places/search?q=tacos", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status struct {
			Kind   string `json:"kind"`
			Reason string `json:"reason"`
		} `json:"status"`
		Places []domain.Place `json:"places"`
	}
	decodeBody(t, rec, &body)
	require.Equal(t, "FAILED", body.Status.Kind)
	require.Equal(t, "SERVICE_UNAVAILABLE", body.Status.Reason)
	require.Empty(t, body.Places)
}
