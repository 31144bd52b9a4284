package pipeline

import (
	"context"
	"testing"
	"time"

	"lunchradar/pkg/domain"
	"lunchradar/pkg/places"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func recvStatus(t *testing.T, ch <-chan Status) Status {
	t.Helper()

	select {
	case s, ok := <-ch:
		require.True(t, ok, "status stream closed unexpectedly")

		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for status")

		return Status{}
	}
}

func TestCoordinator_StartsIdle(t *testing.T) {
	env := newTestEnv(t, testOptions())

	require.Equal(t, Status{Kind: StatusIdle}, env.coord.Status())
	require.Empty(t, env.coord.Results())
	require.Empty(t, env.coord.Errors())
}

func TestWatchStatus_SeesLoadingThenSuccess(t *testing.T) {
	env := newTestEnv(t, testOptions())
	env.publishFix()

	env.network.EXPECT().Search(gomock.Any(), gomock.Any()).
		Return(places.SearchPage{Places: []domain.Place{{ID: "p1"}}}, nil)
	env.store.EXPECT().ReadPlaces(gomock.Any(), gomock.Any()).Return(nil, nil)
	env.store.EXPECT().FavoriteIDs(gomock.Any()).Return(nil, nil)

	statuses, stop := env.coord.WatchStatus()
	defer stop()

	env.coord.Execute(context.Background(), domain.SearchIntent{Query: "tacos"}, 500)

	require.Equal(t, StatusLoading, recvStatus(t, statuses).Kind)

	settled := recvStatus(t, statuses)
	require.Equal(t, StatusSuccess, settled.Kind)
	require.Equal(t, 1, settled.Count)
}

func TestWatchResults_StreamsPublishedLists(t *testing.T) {
	env := newTestEnv(t, testOptions())
	env.publishFix()

	env.network.EXPECT().Search(gomock.Any(), gomock.Any()).
		Return(places.SearchPage{Places: []domain.Place{{ID: "p1"}}}, nil)
	env.store.EXPECT().ReadPlaces(gomock.Any(), gomock.Any()).Return(nil, nil)
	env.store.EXPECT().FavoriteIDs(gomock.Any()).Return(nil, nil)

	results, stop := env.coord.WatchResults()
	defer stop()

	env.coord.Execute(context.Background(), domain.SearchIntent{Query: "tacos"}, 500)

	select {
	case got := <-results:
		require.Equal(t, []domain.Place{{ID: "p1"}}, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published results")
	}
}

func TestCancelAll_IsIdempotent(t *testing.T) {
	env := newTestEnv(t, testOptions())

	env.coord.CancelAll()
	env.coord.CancelAll()

	require.Equal(t, StatusIdle, env.coord.Status().Kind)
}

func TestCancelAll_KeepsResultsAndResetsStatus(t *testing.T) {
	env := newTestEnv(t, testOptions())
	env.publishFix()

	env.network.EXPECT().Search(gomock.Any(), gomock.Any()).
		Return(places.SearchPage{Places: []domain.Place{{ID: "p1"}}}, nil)
	env.store.EXPECT().ReadPlaces(gomock.Any(), gomock.Any()).Return(nil, nil)
	env.store.EXPECT().FavoriteIDs(gomock.Any()).Return(nil, nil)

	env.coord.Execute(context.Background(), domain.SearchIntent{Query: "tacos"}, 500)
	require.Equal(t, StatusSuccess, env.coord.Status().Kind)

	env.coord.CancelAll()

	status := env.coord.Status()
	require.Equal(t, StatusIdle, status.Kind)
	require.Equal(t, 1, status.Count)
	require.Equal(t, []domain.Place{{ID: "p1"}}, env.coord.Results())
}

func TestCancelAll_ReleasesPendingStageTimers(t *testing.T) {
	env := newTestEnv(t, testOptions())

	queries := make(chan string)
	intents := env.coord.DebounceQueries(context.Background(), queries)

	// a debounce timer is now pending; cancelling must release it without
	// emitting an intent
	queries <- "pizza"
	env.coord.CancelAll()

	select {
	case intent, ok := <-intents:
		require.False(t, ok, "expected closed stream, got intent %q", intent.Query)
	case <-time.After(2 * time.Second):
		t.Fatal("debounce stage did not shut down")
	}
}

func TestClose_IsIdempotent(t *testing.T) {
	env := newTestEnv(t, testOptions())

	env.coord.Close()
	env.coord.Close()
}
