package v1handler

import (
	"encoding/json"
	"net/http"

	"lunchradar/pkg/domain"
	"lunchradar/pkg/serrors"
)

type locationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateLocation handles POST /v1/location. The posted point becomes the
// latest known fix and is pushed to every location subscriber.
func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "invalid payload"))

		return
	}
	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "coordinates out of range"))

		return
	}

	h.deps.Location.Publish(&domain.LocationPoint{Lat: req.Lat, Lng: req.Lng})
	w.WriteHeader(http.StatusNoContent)
}
