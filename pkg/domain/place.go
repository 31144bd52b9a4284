package domain

// PlaceID uniquely identifies a venue across all sources. It is the provider's
// stable place identifier and is the only field that participates in place
// identity: two Place values with the same ID are the same venue regardless of
// any other field.
type PlaceID string

// PriceTier represents the coarse price bucket reported by the search
// provider, from 0 (free/unknown) to 4 (most expensive).
type PriceTier int

// Photo references a remotely hosted place photo. The reference token is
// resolved to an image URL by the provider, not by this service.
type Photo struct {
	// Reference is the provider's opaque photo token.
	Reference string `json:"reference"`
	// Width and Height are the maximum available dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Place represents a single restaurant as assembled by the merge engine.
// Network and cache adapters construct Place values from raw responses; the
// merge engine is the only component that mutates one, and only to stamp
// Favorite. Places are never persisted by the pipeline itself.
type Place struct {
	// ID is the stable venue identifier. Deduplication across sources keys on
	// this field alone; see EqualIdentity.
	ID PlaceID `json:"id"`
	// Name is the display name of the venue.
	Name string `json:"name"`

	// Rating is the average user rating, 0 when unknown.
	Rating float64 `json:"rating"`
	// ReviewCount is the total number of user ratings behind Rating.
	ReviewCount int `json:"reviewCount"`
	// Price is the provider's price bucket.
	Price PriceTier `json:"price"`

	// Location is the venue coordinate.
	Location LocationPoint `json:"location"`
	// Address is the human-readable street address or vicinity.
	Address string `json:"address"`
	// Photos holds references to provider-hosted photos.
	Photos []Photo `json:"photos,omitempty"`

	// Favorite reports whether the current user has favorited this place. It
	// is a mutable annotation stamped per pipeline run and never part of the
	// place's identity.
	Favorite bool `json:"favorite"`
}

// EqualIdentity reports whether two places refer to the same venue. Identity
// is defined by ID only so that copies differing in mutable fields (for
// example the favorite flag) still deduplicate.
func (p Place) EqualIdentity(other Place) bool {
	return p.ID == other.ID
}

// FavoriteIDSet is a snapshot of the user's favorited place identifiers.
type FavoriteIDSet map[PlaceID]struct{}

// Contains reports whether the given place ID is in the set.
func (s FavoriteIDSet) Contains(id PlaceID) bool {
	_, ok := s[id]

	return ok
}
