package domain

import "strings"

// SearchIntent is a single, settled search request produced by the query
// debounce stage and consumed exactly once by the merge engine. It is an
// immutable value.
type SearchIntent struct {
	// Query is the free-text query; empty means "everything nearby".
	Query string `json:"query"`
	// PageToken, when set, requests the next page of a prior search. It is
	// passed through to the network source untouched.
	PageToken string `json:"pageToken,omitempty"`
}

// IsBlank reports whether the intent carries no usable query text.
func (i SearchIntent) IsBlank() bool {
	return strings.TrimSpace(i.Query) == "" && i.PageToken == ""
}
