package domain_test

import (
	"testing"

	"lunchradar/pkg/domain"

	"github.com/stretchr/testify/require"
)

func TestDistanceMeters_Zero(t *testing.T) {
	p := domain.LocationPoint{Lat: 37.7749, Lng: -122.4194}
	require.InDelta(t, 0, p.DistanceMeters(p), 0.001)
}

func TestDistanceMeters_ShortHop(t *testing.T) {
	// Roughly 111m per 0.001 degrees of latitude.
	a := domain.LocationPoint{Lat: 37.7749, Lng: -122.4194}
	b := domain.LocationPoint{Lat: 37.7759, Lng: -122.4194}
	d := a.DistanceMeters(b)
	require.InDelta(t, 111, d, 2)
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	a := domain.LocationPoint{Lat: 40.7128, Lng: -74.0060}
	b := domain.LocationPoint{Lat: 40.7138, Lng: -74.0050}
	require.InDelta(t, a.DistanceMeters(b), b.DistanceMeters(a), 1e-9)
}

func TestDistanceMeters_KnownPair(t *testing.T) {
	// SF to LA is about 559km great-circle.
	sf := domain.LocationPoint{Lat: 37.7749, Lng: -122.4194}
	la := domain.LocationPoint{Lat: 34.0522, Lng: -118.2437}
	require.InDelta(t, 559000, sf.DistanceMeters(la), 5000)
}
