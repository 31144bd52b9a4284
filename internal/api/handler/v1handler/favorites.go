package v1handler

import (
	"fmt"
	"net/http"
	"sort"

	"lunchradar/pkg/domain"
	"lunchradar/pkg/serrors"
)

type favoritesResponse struct {
	IDs []string `json:"ids"`
}

// ListFavorites handles GET /v1/favorites.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ids, err := h.deps.Favorites.FavoriteIDs(ctx)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("could not list favorites: %w", err))

		return
	}

	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, string(id))
	}
	sort.Strings(out)

	writeJSON(ctx, w, http.StatusOK, favoritesResponse{IDs: out})
}

// AddFavorite handles PUT /v1/favorites/{id}. Adding an existing favorite is
// a no-op.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.PathValue("id")
	if id == "" {
		writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "missing place id"))

		return
	}

	if err := h.deps.Favorites.AddFavorite(ctx, domain.PlaceID(id)); err != nil {
		writeError(ctx, w, fmt.Errorf("could not add favorite: %w", err))

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavorite handles DELETE /v1/favorites/{id}.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.PathValue("id")
	if id == "" {
		writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "missing place id"))

		return
	}

	removed, err := h.deps.Favorites.RemoveFavorite(ctx, domain.PlaceID(id))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("could not remove favorite: %w", err))

		return
	}
	if !removed {
		writeError(ctx, w, serrors.With(serrors.ErrNotFound, "favorite not found"))

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
