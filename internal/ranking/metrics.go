package ranking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fallback reasons recorded in glimpse_fallbacks_total
const (
	FallbackAPICall     = "api_call"
	FallbackEmpty       = "empty_response"
	FallbackMalformed   = "malformed_response"
	FallbackCircuitOpen = "circuit_open"
	FallbackClient      = "client"
	FallbackSettings    = "settings"
	FallbackPanic       = "panic"
	FallbackOther       = "other"
)

var (
	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glimpse",
			Name:      "searches_total",
			Help:      "Total searches by requested mode",
		},
		[]string{"mode"},
	)

	fallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glimpse",
			Name:      "fallbacks_total",
			Help:      "Remote rankings replaced by the local scorer, by reason",
		},
		[]string{"reason"},
	)

	remoteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "glimpse",
			Name:      "remote_duration_seconds",
			Help:      "Duration of remote ranking calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~50s
		},
	)

	resultsCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "glimpse",
			Name:      "results_count",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)
)
