// Package places defines the interface and data types used to search for
// nearby restaurants through a backing provider.
package places

import (
	"context"

	"lunchradar/pkg/domain"
)

// SearchRequest describes a single provider search.
type SearchRequest struct {
	// Query is optional free-text ("pizza"); empty searches by location only.
	Query string
	// Location is the center of the search.
	Location domain.LocationPoint
	// RadiusMeters bounds the search area.
	RadiusMeters int
	// PageToken, when set, continues a previous search. Token semantics are
	// owned by the provider and passed through untouched.
	PageToken string
}

// SearchPage is one page of provider results.
type SearchPage struct {
	// Places holds the decoded results in provider order.
	Places []domain.Place
	// NextPageToken is non-empty when the provider has more results.
	NextPageToken string
}

// Client is the abstraction for place search providers. Implementations
// perform the remote search and map raw responses into domain places.
//
//go:generate mockgen -package mockplaces -source=interface.go -destination=mock/mockplaces.go *
type Client interface {
	// Search performs a remote place search. Failures are classified with
	// serrors kinds: ErrTimeout, ErrRateLimited or plain wrapped causes for
	// transport and decode errors.
	Search(ctx context.Context, req SearchRequest) (SearchPage, error)
}
