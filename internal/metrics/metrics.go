// Package metrics exposes Prometheus instrumentation for credential
// resolutions and rbw invocations. Only counts, durations, and outcome
// labels are recorded; never entry names or secret values.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutionsTotal   *prometheus.CounterVec
	resolutionDuration *prometheus.HistogramVec
	invocationsTotal   *prometheus.CounterVec

	// Registration guard
	metricsOnce       sync.Once
	metricsRegistered bool
)

// Init registers all metrics with the default registry. Safe to call
// more than once; recording functions are no-ops until Init has run.
func Init() {
	metricsOnce.Do(func() {
		resolutionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rbw_lookup_resolutions_total",
				Help: "Total number of credential resolutions by outcome",
			},
			[]string{"outcome"},
		)

		resolutionDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rbw_lookup_resolution_duration_seconds",
				Help:    "Duration of credential resolutions in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"outcome"},
		)

		invocationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rbw_lookup_invocations_total",
				Help: "Total number of rbw child process invocations by subcommand",
			},
			[]string{"subcommand"},
		)

		metricsRegistered = true
	})
}

// RecordResolution records one finished resolution with its outcome label
// ("ok", "not_found", "ambiguous", "locked", "tool_not_found",
// "exec_error", "parse_error").
func RecordResolution(outcome string, duration time.Duration) {
	if !metricsRegistered {
		return
	}
	resolutionsTotal.WithLabelValues(outcome).Inc()
	resolutionDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordInvocation records one rbw child process invocation.
func RecordInvocation(subcommand string) {
	if !metricsRegistered {
		return
	}
	invocationsTotal.WithLabelValues(subcommand).Inc()
}
