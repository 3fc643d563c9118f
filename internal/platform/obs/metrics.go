package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EstimatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trip_distance_estimates_total",
		Help: "Distance estimates served, labeled by the strategy that produced them",
	}, []string{"strategy"})

	ProviderFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trip_distance_provider_failures_total",
		Help: "Routing provider attempts that ended in fallthrough",
	}, []string{"provider"})

	ProviderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trip_distance_provider_duration_seconds",
		Help:    "Duration of single routing provider attempts",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
	}, []string{"provider", "result"})
)
