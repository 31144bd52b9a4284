package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lunchradar/pkg/controller"

	"github.com/stretchr/testify/require"
)

func TestWithCORS_SetsHeaders(t *testing.T) {
	h := controller.WithCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/places/search", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWithCORS_Preflight(t *testing.T) {
	called := false
	h := controller.WithCORS(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/v1/favorites", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.False(t, called)
}

func TestWithLogger_PassesThrough(t *testing.T) {
	h := controller.WithLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotNil(t, r.Context().Value(controller.RequestIDKey))
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusTeapot, rec.Code)
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1")
	require.Equal(t, "1.2.3.4", controller.GetClientIP(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Real-IP", "5.6.7.8")
	require.Equal(t, "5.6.7.8", controller.GetClientIP(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "9.9.9.9:1234"
	require.Equal(t, "9.9.9.9", controller.GetClientIP(r))
}

func TestPprofMux(t *testing.T) {
	mux := controller.PprofMux()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
