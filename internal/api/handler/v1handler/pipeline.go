package v1handler

import (
	"net/http"
	"time"

	"lunchradar/internal/pipeline"
)

// statusResponse mirrors pipeline.Status on the wire.
type statusResponse struct {
	Kind   string `json:"kind"`
	Count  int    `json:"count"`
	Reason string `json:"reason,omitempty"`
}

func toStatusResponse(s pipeline.Status) statusResponse {
	return statusResponse{
		Kind:   string(s.Kind),
		Count:  s.Count,
		Reason: s.Reason,
	}
}

// pipelineErrorResponse is one recovered source failure.
type pipelineErrorResponse struct {
	Source  string    `json:"source"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type pipelineStatusResponse struct {
	Status statusResponse          `json:"status"`
	Errors []pipelineErrorResponse `json:"errors"`
}

// PipelineStatus handles GET /v1/pipeline/status.
func (h *Handler) PipelineStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	errs := h.deps.Coordinator.Errors()
	out := make([]pipelineErrorResponse, 0, len(errs))
	for _, e := range errs {
		msg := ""
		if e.Cause != nil {
			msg = e.Cause.Error()
		}
		out = append(out, pipelineErrorResponse{
			Source:  e.Kind.Error(),
			Message: msg,
			At:      e.At,
		})
	}

	writeJSON(ctx, w, http.StatusOK, pipelineStatusResponse{
		Status: toStatusResponse(h.deps.Coordinator.Status()),
		Errors: out,
	})
}

// CancelPipelines handles POST /v1/pipeline/cancel. Cancelling is idempotent.
func (h *Handler) CancelPipelines(w http.ResponseWriter, _ *http.Request) {
	h.deps.Coordinator.CancelAll()
	w.WriteHeader(http.StatusNoContent)
}
