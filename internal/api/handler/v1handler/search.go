package v1handler

import (
	"net/http"
	"strconv"

	"lunchradar/pkg/domain"
	"lunchradar/pkg/serrors"
)

// searchResponse carries the resolved list together with the pipeline status
// so clients can distinguish a full success from a partial one.
type searchResponse struct {
	Status statusResponse `json:"status"`
	Places []domain.Place `json:"places"`
}

// SearchPlaces handles GET /v1/places/search. It runs one merge cycle for the
// given query and returns whatever the pipeline resolved to; source failures
// show up in the status, never as an error response.
func (h *Handler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	radius := 0
	if s := r.URL.Query().Get("radius"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "invalid radius"))

			return
		}
		radius = v
	}

	intent := domain.SearchIntent{
		Query:     r.URL.Query().Get("q"),
		PageToken: r.URL.Query().Get("pageToken"),
	}

	list := h.deps.Coordinator.Execute(ctx, intent, radius)
	if list == nil {
		list = []domain.Place{}
	}

	writeJSON(ctx, w, http.StatusOK, searchResponse{
		Status: toStatusResponse(h.deps.Coordinator.Status()),
		Places: list,
	})
}
