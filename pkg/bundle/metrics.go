package bundle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bundleBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "goldenpath_bundle_build_duration_seconds",
			Help:    "Duration of bundle derivation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	bundleBuildTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldenpath_bundle_build_total",
			Help: "Total number of bundle derivation attempts",
		},
		[]string{"status"}, // success or error
	)
)
