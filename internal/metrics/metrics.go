// Package metrics exposes the prometheus collectors used by the HTTP layer
// and the roadmap services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ViewBuildsTotal counts roadmap views computed, by view kind.
	ViewBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_roadmap_view_builds_total",
			Help: "Number of roadmap views built from stored rows",
		},
		[]string{"view"},
	)

	// CurriculumCompletedDays reports the completed day count from the last
	// curriculum overview.
	CurriculumCompletedDays = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_curriculum_completed_days",
			Help: "Curriculum days logged as of the last overview",
		},
	)
)
