package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	reportsTotal *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	spotPrice    *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
	instruments  *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		reportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxbrief_reports_generated_total",
				Help: "Total number of reports generated",
			},
			[]string{"type"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxbrief_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		spotPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fxbrief_spot_price",
				Help: "Last spot price seen per instrument",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxbrief_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		instruments: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fxbrief_section_instruments",
				Help: "Instruments scored per report section",
			},
			[]string{"section"},
		),
	}
}

// RecordReport counts a generated report by type.
func (r *Recorder) RecordReport(reportType string) {
	r.reportsTotal.WithLabelValues(reportType).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordSpot records the last spot price for a symbol.
func (r *Recorder) RecordSpot(symbol string, price float64) {
	r.spotPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordInstruments records how many instruments a section scored.
func (r *Recorder) RecordInstruments(section string, n int) {
	r.instruments.WithLabelValues(section).Set(float64(n))
}
