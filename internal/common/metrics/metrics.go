package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of search combinations executed",
		},
		[]string{"source"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "search_duration_seconds",
			Help: "Duration of filter combination in seconds",
		},
		[]string{"source"},
	)

	SearchResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_result_count",
			Help:    "Number of listings surviving the filter pipeline",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"source"},
	)

	GeocodeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_requests_total",
			Help: "Reverse-geocoding attempts per provider and outcome",
		},
		[]string{"provider", "status"},
	)

	ListingSourceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_source_errors_total",
			Help: "Errors fetching candidate listings per source",
		},
		[]string{"source"},
	)
)
