// Package v1handler implements the v1 HTTP API: place search, pipeline
// control, favorites management and location updates.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"lunchradar/internal/pipeline"
	"lunchradar/pkg/location"
	"lunchradar/pkg/logger"
	"lunchradar/pkg/serrors"
	"lunchradar/pkg/storage"

	"go.uber.org/zap"
)

// Deps are the collaborators the v1 handlers delegate to.
type Deps struct {
	// Coordinator runs searches and exposes pipeline state.
	Coordinator pipeline.Coordinator
	// Favorites persists the favorite set.
	Favorites storage.FavoriteStorage
	// Location receives client-posted coordinates.
	Location *location.ManualSource
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Mux returns the v1 route table with authentication applied.
func (h *Handler) Mux(sec *SecHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/places/search", h.SearchPlaces)
	mux.HandleFunc("GET /v1/pipeline/status", h.PipelineStatus)
	mux.HandleFunc("POST /v1/pipeline/cancel", h.CancelPipelines)
	mux.HandleFunc("POST /v1/location", h.UpdateLocation)
	mux.HandleFunc("GET /v1/favorites", h.ListFavorites)
	mux.HandleFunc("PUT /v1/favorites/{id}", h.AddFavorite)
	mux.HandleFunc("DELETE /v1/favorites/{id}", h.RemoveFavorite)

	return sec.Middleware(mux)
}

// errorResponse is the JSON error envelope shared by all v1 endpoints.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// mapError translates semantic error kinds to HTTP status codes. Anything
// unclassified is reported as an internal error without leaking its message.
func mapError(err error) (int, errorResponse) {
	var msg string
	var serr *serrors.Error
	if errors.As(err, &serr) {
		msg = serr.Message()
	}

	status := http.StatusInternalServerError
	code := serrors.ErrInternal
	fallback := "internal error"

	switch {
	case errors.Is(err, serrors.ErrBadRequest):
		status, code, fallback = http.StatusBadRequest, serrors.ErrBadRequest, "invalid request"
	case errors.Is(err, serrors.ErrUnauthorized):
		status, code, fallback = http.StatusUnauthorized, serrors.ErrUnauthorized, "unauthorized"
	case errors.Is(err, serrors.ErrNotFound):
		status, code, fallback = http.StatusNotFound, serrors.ErrNotFound, "resource not found"
	case errors.Is(err, serrors.ErrConflict):
		status, code, fallback = http.StatusConflict, serrors.ErrConflict, "conflict"
	case errors.Is(err, serrors.ErrRateLimited):
		status, code, fallback = http.StatusTooManyRequests, serrors.ErrRateLimited, "rate limited"
	case errors.Is(err, serrors.ErrTimeout):
		status, code, fallback = http.StatusGatewayTimeout, serrors.ErrTimeout, "timed out"
	default:
		// do not leak internal error details to clients
		msg = ""
	}

	if msg == "" {
		msg = fallback
	}

	return status, errorResponse{Code: code.Error(), Message: msg}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status, body := mapError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
	}
	writeJSON(ctx, w, status, body)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn(ctx, "could not encode response", zap.Error(err))
	}
}
