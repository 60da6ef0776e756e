package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	pollCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bitpanda_poll_cycles_total",
			Help: "Number of completed poll cycles by outcome.",
		},
		[]string{"outcome"},
	)

	pollCycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bitpanda_poll_cycle_duration_seconds",
			Help:    "Wall-clock duration of a poll cycle.",
			Buckets: prometheus.DefBuckets,
		},
	)

	categoryValue = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bitpanda_category_value",
			Help: "Aggregated value of a wallet category in the display currency.",
		},
		[]string{"category", "currency"},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(pollCyclesTotal, pollCycleDuration, categoryValue)
}

// ObservePollCycle records the outcome and duration of one poll cycle.
func ObservePollCycle(outcome string, took time.Duration) {
	pollCyclesTotal.WithLabelValues(outcome).Inc()
	pollCycleDuration.Observe(took.Seconds())
}

// SetCategoryValue publishes the latest aggregated value of a category.
func SetCategoryValue(category, currency string, value float64) {
	categoryValue.WithLabelValues(category, currency).Set(value)
}
