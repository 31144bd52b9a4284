package pipeline

import (
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"

	"lunchradar/pkg/domain"
	"lunchradar/pkg/storage"
)

// RefreshJobArgs contains the arguments for a cache refresh job submitted to
// River. The location cell is the unique key, so each cell has at most one
// refresh job per TTL window regardless of how many runs touch it.
type RefreshJobArgs struct {
	// Lat of the cell center, marked unique together with Lng and RadiusMeters.
	Lat float64 `json:"lat" river:"unique"`
	// Lng of the cell center.
	Lng float64 `json:"lng" river:"unique"`
	// RadiusMeters of the original search.
	RadiusMeters int `json:"radiusMeters" river:"unique"`

	// uniqueJobPeriod defines the lookback window during which a job with the
	// same arguments is considered a duplicate across the specified states.
	uniqueJobPeriod time.Duration
}

// NewRefreshJobArgs builds refresh args for the given cache cell.
func NewRefreshJobArgs(key storage.CacheKey, period time.Duration) RefreshJobArgs {
	return RefreshJobArgs{
		Lat:             key.Location.Lat,
		Lng:             key.Location.Lng,
		RadiusMeters:    key.RadiusMeters,
		uniqueJobPeriod: period,
	}
}

// CacheKey reconstructs the cache cell this job refreshes.
func (args RefreshJobArgs) CacheKey() storage.CacheKey {
	return storage.CacheKey{
		Location:     domain.LocationPoint{Lat: args.Lat, Lng: args.Lng},
		RadiusMeters: args.RadiusMeters,
	}
}

// Kind returns the River job kind used to register and dispatch the refresh worker.
func (args RefreshJobArgs) Kind() string { return "RefreshPlacesCacheJob" }

// InsertOpts returns the River options that control how the job is enqueued,
// enforcing uniqueness per cell across all live job states.
func (args RefreshJobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		// make sure we only have one refresh per cell in any state
		UniqueOpts: river.UniqueOpts{
			ByArgs:   true,
			ByPeriod: args.uniqueJobPeriod,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStateCompleted,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
