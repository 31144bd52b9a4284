package location_test

import (
	"testing"

	"lunchradar/pkg/domain"
	"lunchradar/pkg/location"

	"github.com/stretchr/testify/require"
)

func TestManualSource_LatestStartsUnknown(t *testing.T) {
	src := location.NewManualSource()

	_, ok := src.Latest()
	require.False(t, ok)
}

func TestManualSource_PublishUpdatesLatest(t *testing.T) {
	src := location.NewManualSource()
	p := domain.LocationPoint{Lat: 37.77, Lng: -122.42}

	src.Publish(&p)

	got, ok := src.Latest()
	require.True(t, ok)
	require.Equal(t, p, got)
}

func TestManualSource_NilDoesNotClearLatest(t *testing.T) {
	src := location.NewManualSource()
	p := domain.LocationPoint{Lat: 1, Lng: 2}

	src.Publish(&p)
	src.Publish(nil)

	got, ok := src.Latest()
	require.True(t, ok)
	require.Equal(t, p, got)
}

func TestManualSource_SubscribersReceiveUpdates(t *testing.T) {
	src := location.NewManualSource()
	ch, cancel := src.Subscribe()
	defer cancel()

	p := domain.LocationPoint{Lat: 3, Lng: 4}
	src.Publish(&p)
	src.Publish(nil)

	got := <-ch
	require.NotNil(t, got)
	require.Equal(t, p, *got)

	require.Nil(t, <-ch)
}

func TestManualSource_UnsubscribeClosesChannel(t *testing.T) {
	src := location.NewManualSource()
	ch, cancel := src.Subscribe()

	cancel()
	// idempotent
	cancel()

	_, open := <-ch
	require.False(t, open)

	// publishing after unsubscribe must not panic
	src.Publish(&domain.LocationPoint{Lat: 5, Lng: 6})
}
