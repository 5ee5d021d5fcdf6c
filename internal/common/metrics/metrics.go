// internal/common/metrics/metrics.go
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_api_requests_total",
			Help: "Total number of backend API requests by status class",
		},
		[]string{"method", "status_class"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_api_request_duration_seconds",
			Help:    "Duration of backend API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	TokenRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_token_refresh_total",
			Help: "Access token refresh attempts by outcome",
		},
		[]string{"outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_cache_lookups_total",
			Help: "Query cache lookups by namespace and result",
		},
		[]string{"namespace", "result"},
	)

	Mutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_mutations_total",
			Help: "Resource mutations by namespace and outcome",
		},
		[]string{"namespace", "outcome"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "console_active_sessions",
			Help: "Number of console sessions held in memory",
		},
	)
)

// StatusClass buckets an HTTP status, "error" when no response was received.
func StatusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return fmt.Sprintf("%dxx", status/100)
}

// RequestObserver feeds API request metrics from the shared HTTP client.
type RequestObserver struct{}

func (RequestObserver) ObserveRequest(_ context.Context, method string, status int, duration time.Duration) {
	APIRequests.WithLabelValues(method, StatusClass(status)).Inc()
	APIRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}
