// Package observability holds tracing setup and Prometheus collectors.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// LikeToggles counts like-set mutations by target and direction.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_like_toggles_total",
		Help: "Total number of like toggles by target type and direction",
	}, []string{"target", "direction"})

	// AuthFailures counts rejected credentials by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_auth_failures_total",
		Help: "Total number of authentication failures by reason",
	}, []string{"reason"})

	// ReportLatency records activity-report generation latency.
	ReportLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quill_report_latency_seconds",
		Help:    "Activity report generation latency in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

// ObserveReport records the latency of a report generation started at start.
func ObserveReport(start time.Time) {
	ReportLatency.Observe(time.Since(start).Seconds())
}
