package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"lunchradar/pkg/metrics"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lunchradar",
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Merge runs by outcome (success, failed, unavailable, superseded).",
	}, []string{"outcome"})

	supersededRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lunchradar",
		Subsystem: "pipeline",
		Name:      "superseded_runs_total",
		Help:      "Runs cancelled because a newer run claimed the pipeline.",
	})

	sourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lunchradar",
		Subsystem: "pipeline",
		Name:      "source_failures_total",
		Help:      "Recovered source failures by kind.",
	}, []string{"source"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lunchradar",
		Subsystem: "pipeline",
		Name:      "run_duration_seconds",
		Help:      "End to end duration of merge runs.",
		Buckets:   metrics.DefaultBuckets,
	})
)
