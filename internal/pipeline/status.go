package pipeline

import (
	"time"

	"lunchradar/pkg/serrors"
)

// StatusKind enumerates the pipeline lifecycle states.
type StatusKind string

const (
	// StatusIdle means no run has started since creation or the last reset.
	StatusIdle StatusKind = "IDLE"
	// StatusLoading means a merge run is in flight.
	StatusLoading StatusKind = "LOADING"
	// StatusSuccess means the last run settled with every source succeeding.
	StatusSuccess StatusKind = "SUCCESS"
	// StatusFailed means at least one source errored during the last run. A
	// failed run can still carry a non-empty result list from partial success.
	StatusFailed StatusKind = "FAILED"
)

// Status is the externally observable pipeline state. It is decoupled from
// the result list so a UI can render a spinner or error banner without
// re-rendering results.
type Status struct {
	// Kind is the current lifecycle state.
	Kind StatusKind `json:"kind"`
	// Count is the size of the published result list; only meaningful for
	// SUCCESS and FAILED.
	Count int `json:"count"`
	// Reason summarizes why the last run failed; empty otherwise.
	Reason string `json:"reason,omitempty"`
}

// Error is one recovered source failure. Source errors never propagate to
// callers of Execute; they are only observable through the error log.
type Error struct {
	// Kind classifies the failing source (serrors.ErrNetwork, ErrCache,
	// ErrLocation or ErrUnavailable).
	Kind serrors.Kind
	// Cause is the underlying error.
	Cause error
	// At is when the failure was recorded.
	At time.Time
	// Generation identifies the run that produced the failure.
	Generation uint64
}
