package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// APILatency times the analytics endpoints end to end, report assembly
	// included.
	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fxbrief",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of analytics endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	APIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fxbrief",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by analytics endpoint",
		},
		[]string{"endpoint"},
	)

	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fxbrief",
			Subsystem: "api",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the report rate limiter",
		},
		[]string{"endpoint"},
	)
)

// Register installs the endpoint vectors on the default registry. Safe to
// call from every handler constructor.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(APILatency, APIErrors, RateLimited)
	})
}
