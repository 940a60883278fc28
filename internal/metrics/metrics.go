// Package metrics defines the Prometheus collectors for outbound API traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequests counts completed CoinLore API requests by operation and
	// coarse outcome ("ok" or "error").
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinlens_api_requests_total",
			Help: "Total CoinLore API requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	// APIRequestDuration observes end-to-end request latency per operation.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coinlens_api_request_duration_seconds",
			Help:    "CoinLore API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)
)
