// Package googleplaces provides a places.Client implementation backed by the
// Google Places Nearby Search API.
package googleplaces

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"lunchradar/pkg/domain"
	"lunchradar/pkg/places"
	"lunchradar/pkg/serrors"
)

// DefaultBaseURL is the production Nearby Search endpoint.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

// Client talks to the Google Places REST API and fulfills the places.Client
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the provider
	apiKey     string       // apiKey is the Google Maps Platform API key
	baseURL    string       // baseURL is overridable for tests
}

// searchResponse mirrors the provider's JSON envelope.
// https://developers.google.com/maps/documentation/places/web-service/search-nearby
type searchResponse struct {
	Status        string `json:"status"`
	ErrorMessage  string `json:"error_message"`
	NextPageToken string `json:"next_page_token"`
	Results       []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Vicinity string `json:"vicinity"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Rating           float64 `json:"rating"`
		UserRatingsTotal int     `json:"user_ratings_total"`
		PriceLevel       int     `json:"price_level"`
		Photos           []struct {
			PhotoReference string `json:"photo_reference"`
			Width          int    `json:"width"`
			Height         int    `json:"height"`
		} `json:"photos"`
	} `json:"results"`
}

// Search performs a Nearby Search for restaurants around the requested
// location. Provider-level statuses are mapped onto serrors kinds so callers
// can distinguish rate limiting and bad requests from transport failures.
func (c *Client) Search(ctx context.Context, req places.SearchRequest) (places.SearchPage, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("type", "restaurant")
	if req.PageToken != "" {
		// with a page token the provider ignores all other parameters
		q.Set("pagetoken", req.PageToken)
	} else {
		q.Set("location", fmt.Sprintf("%f,%f", req.Location.Lat, req.Location.Lng))
		q.Set("radius", strconv.Itoa(req.RadiusMeters))
		if req.Query != "" {
			q.Set("keyword", req.Query)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return places.SearchPage{}, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return places.SearchPage{}, serrors.Wrap(serrors.ErrTimeout, err, "search timed out")
		}

		return places.SearchPage{}, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return places.SearchPage{}, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return places.SearchPage{},
			serrors.With(serrors.ErrRateLimited, "rate limited: %s", strings.TrimSpace(string(b)))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return places.SearchPage{}, fmt.Errorf("search failed with status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var sr searchResponse
	if err := json.Unmarshal(b, &sr); err != nil {
		return places.SearchPage{}, fmt.Errorf("could not decode response: %w", err)
	}

	switch sr.Status {
	case "OK", "ZERO_RESULTS":
		// fallthrough to decoding below; ZERO_RESULTS yields an empty page
	case "OVER_QUERY_LIMIT":
		return places.SearchPage{}, serrors.With(serrors.ErrRateLimited, "over query limit: %s", sr.ErrorMessage)
	case "INVALID_REQUEST":
		return places.SearchPage{}, serrors.With(serrors.ErrBadRequest, "invalid request: %s", sr.ErrorMessage)
	default:
		return places.SearchPage{}, fmt.Errorf("search failed with provider status %s: %s", sr.Status, sr.ErrorMessage)
	}

	out := places.SearchPage{NextPageToken: sr.NextPageToken}
	for _, r := range sr.Results {
		p := domain.Place{
			ID:          domain.PlaceID(r.PlaceID),
			Name:        r.Name,
			Rating:      r.Rating,
			ReviewCount: r.UserRatingsTotal,
			Price:       domain.PriceTier(r.PriceLevel),
			Location: domain.LocationPoint{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
			Address: r.Vicinity,
		}
		for _, ph := range r.Photos {
			p.Photos = append(p.Photos, domain.Photo{
				Reference: ph.PhotoReference,
				Width:     ph.Width,
				Height:    ph.Height,
			})
		}
		out.Places = append(out.Places, p)
	}

	return out, nil
}

// Ensure Client conforms to the places.Client interface at compile time.
var _ places.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client and API key to
// interact with the Google Places API.
func New(httpClient *http.Client, apiKey string) *Client {
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
	}
}

// NewWithBaseURL constructs a Client against a custom endpoint. Used by tests
// to point the client at a local test server.
func NewWithBaseURL(httpClient *http.Client, apiKey, baseURL string) *Client {
	c := New(httpClient, apiKey)
	c.baseURL = baseURL

	return c
}
