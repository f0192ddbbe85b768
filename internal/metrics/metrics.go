package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal counts HTTP requests by method, route, status.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDurationSeconds measures request latency.
	RequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// BuildInfo is set to 1 for the running app and build.
	BuildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_build_info",
			Help: "Build information of the running service",
		},
		[]string{"app", "version", "commit"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDurationSeconds, BuildInfo)
}

// SetBuildInfo records the running app and build.
func SetBuildInfo(app, version, commit string) {
	BuildInfo.WithLabelValues(app, version, commit).Set(1)
}
