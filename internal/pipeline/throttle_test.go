package pipeline

import (
	"context"
	"testing"
	"time"

	"lunchradar/pkg/domain"

	"github.com/stretchr/testify/require"
)

// latStep is roughly one meter of latitude in degrees.
const latStep = 1.0 / 111_000

func recvPoint(t *testing.T, ch <-chan domain.LocationPoint) domain.LocationPoint {
	t.Helper()

	select {
	case p, ok := <-ch:
		require.True(t, ok, "location stream closed unexpectedly")

		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for location")

		return domain.LocationPoint{}
	}
}

func requireNoPoint(t *testing.T, ch <-chan domain.LocationPoint, within time.Duration) {
	t.Helper()

	select {
	case p, ok := <-ch:
		if ok {
			t.Fatalf("unexpected location %+v", p)
		}
	case <-time.After(within):
	}
}

func TestThrottledLocations_LatestWinsWithinWindow(t *testing.T) {
	env := newTestEnv(t, testOptions())

	out := env.coord.ThrottledLocations(context.Background())

	// six points, 50m apart, all published well inside one throttle window
	points := make([]domain.LocationPoint, 6)
	for i := range points {
		points[i] = domain.LocationPoint{Lat: 37.0 + float64(i)*50*latStep, Lng: -122.0}
	}

	go func() {
		for i := range points {
			p := points[i]
			env.loc.Publish(&p)
			time.Sleep(15 * time.Millisecond)
		}
	}()

	// the first point passes immediately, the rest conflate to the newest
	require.Equal(t, points[0], recvPoint(t, out))
	require.Equal(t, points[5], recvPoint(t, out))
	requireNoPoint(t, out, 300*time.Millisecond)
}

func TestThrottledLocations_SuppressesSmallMoves(t *testing.T) {
	opts := testOptions()
	opts.ThrottleInterval = 30 * time.Millisecond
	env := newTestEnv(t, opts)

	out := env.coord.ThrottledLocations(context.Background())

	origin := domain.LocationPoint{Lat: 37.0, Lng: -122.0}
	env.loc.Publish(&origin)
	require.Equal(t, origin, recvPoint(t, out))

	time.Sleep(50 * time.Millisecond)

	// 5m is below the 10m threshold
	small := domain.LocationPoint{Lat: 37.0 + 5*latStep, Lng: -122.0}
	env.loc.Publish(&small)
	requireNoPoint(t, out, 100*time.Millisecond)

	time.Sleep(50 * time.Millisecond)

	// 150m is a significant move
	big := domain.LocationPoint{Lat: 37.0 + 150*latStep, Lng: -122.0}
	env.loc.Publish(&big)
	require.Equal(t, big, recvPoint(t, out))
}

func TestThrottledLocations_DropsNilUpdates(t *testing.T) {
	env := newTestEnv(t, testOptions())

	out := env.coord.ThrottledLocations(context.Background())

	env.loc.Publish(nil)
	requireNoPoint(t, out, 100*time.Millisecond)
}

func TestThrottledLocations_ClosesOnContextCancel(t *testing.T) {
	env := newTestEnv(t, testOptions())

	ctx, cancel := context.WithCancel(context.Background())
	out := env.coord.ThrottledLocations(ctx)

	cancel()

	select {
	case _, ok := <-out:
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("location stream did not close")
	}
}
