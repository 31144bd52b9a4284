package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lunchradar/internal/api"
	"lunchradar/internal/api/handler/v1handler"
	"lunchradar/internal/pipeline"
	"lunchradar/pkg/location"
	"lunchradar/pkg/logger"
	mockplaces "lunchradar/pkg/places/mock"
	mockstorage "lunchradar/pkg/storage/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func TestNewServer_RoutesAreWired(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockstorage.NewMockAllStorage(ctrl)
	loc := location.NewManualSource()

	coord := pipeline.New(pipeline.Options{
		DebounceInterval:        10 * time.Millisecond,
		ThrottleInterval:        10 * time.Millisecond,
		DistanceThresholdMeters: 10,
		RetryBackoff:            time.Millisecond,
		RunTimeout:              time.Second,
		DefaultRadiusMeters:     500,
		ErrorLogSize:            8,
		CacheTTL:                time.Minute,
	}, pipeline.Deps{
		Network:   mockplaces.NewMockClient(ctrl),
		Cache:     store,
		Favorites: store,
		Location:  loc,
	})
	t.Cleanup(coord.Close)

	srv, err := api.NewServer(api.Deps{
		Deps: v1handler.Deps{
			Coordinator: coord,
			Favorites:   store,
			Location:    loc,
		},
	}, api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{},
		Addr:              ":0",
		RequestTimeout:    5 * time.Second,
		MetricsPath:       "/metrics",
	})
	require.NoError(t, err)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		return rec
	}

	rec := get("/specs/v1.yaml")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Lunch Radar API")

	rec = get("/v1/pipeline/status")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "IDLE")

	rec = get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
}
