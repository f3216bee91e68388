package purge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ots_purge_runs_total",
		Help: "Number of purge sweeps",
	})

	removedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ots_purge_records_removed_total",
		Help: "Number of expired records removed by purge sweeps",
	})

	failuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ots_purge_failures_total",
		Help: "Number of purge sweeps that finished with an error",
	})

	durationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ots_purge_duration_seconds",
		Help:    "Duration of purge sweeps in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	})
)
