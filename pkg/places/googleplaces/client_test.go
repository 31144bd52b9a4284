package googleplaces_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lunchradar/pkg/domain"
	"lunchradar/pkg/places"
	"lunchradar/pkg/places/googleplaces"
	"lunchradar/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *googleplaces.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return googleplaces.NewWithBaseURL(srv.Client(), "test-key", srv.URL)
}

func TestSearch_DecodesResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.Equal(t, "restaurant", r.URL.Query().Get("type"))
		require.Equal(t, "pizza", r.URL.Query().Get("keyword"))
		require.Equal(t, "250", r.URL.Query().Get("radius"))

		_, _ = w.Write([]byte(`{
			"status": "OK",
			"next_page_token": "tok-2",
			"results": [{
				"place_id": "p1",
				"name": "Golden Boy Pizza",
				"vicinity": "542 Green St",
				"geometry": {"location": {"lat": 37.7997, "lng": -122.4077}},
				"rating": 4.6,
				"user_ratings_total": 2412,
				"price_level": 1,
				"photos": [{"photo_reference": "ref-1", "width": 400, "height": 300}]
			}]
		}`))
	})

	page, err := c.Search(context.Background(), places.SearchRequest{
		Query:        "pizza",
		Location:     domain.LocationPoint{Lat: 37.8, Lng: -122.41},
		RadiusMeters: 250,
	})
	require.NoError(t, err)
	require.Equal(t, "tok-2", page.NextPageToken)
	require.Len(t, page.Places, 1)

	p := page.Places[0]
	require.Equal(t, domain.PlaceID("p1"), p.ID)
	require.Equal(t, "Golden Boy Pizza", p.Name)
	require.Equal(t, "542 Green St", p.Address)
	require.InDelta(t, 4.6, p.Rating, 1e-9)
	require.Equal(t, 2412, p.ReviewCount)
	require.Equal(t, domain.PriceTier(1), p.Price)
	require.Len(t, p.Photos, 1)
	require.Equal(t, "ref-1", p.Photos[0].Reference)
	require.False(t, p.Favorite)
}

func TestSearch_ZeroResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	page, err := c.Search(context.Background(), places.SearchRequest{RadiusMeters: 100})
	require.NoError(t, err)
	require.Empty(t, page.Places)
	require.Empty(t, page.NextPageToken)
}

func TestSearch_PageTokenOnly(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tok-2", r.URL.Query().Get("pagetoken"))
		require.Empty(t, r.URL.Query().Get("location"))
		_, _ = w.Write([]byte(`{"status": "OK", "results": []}`))
	})

	_, err := c.Search(context.Background(), places.SearchRequest{PageToken: "tok-2"})
	require.NoError(t, err)
}

func TestSearch_RateLimited(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OVER_QUERY_LIMIT", "error_message": "quota exceeded"}`))
	})

	_, err := c.Search(context.Background(), places.SearchRequest{RadiusMeters: 100})
	require.Error(t, err)
	require.True(t, errors.Is(err, serrors.ErrRateLimited))
}

func TestSearch_Non2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Search(context.Background(), places.SearchRequest{RadiusMeters: 100})
	require.Error(t, err)
}

func TestSearch_DecodeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := c.Search(context.Background(), places.SearchRequest{RadiusMeters: 100})
	require.Error(t, err)
}
