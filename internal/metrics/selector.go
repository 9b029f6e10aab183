package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	selectorStaleTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "selector",
			Name:      "stale_results_total",
			Help:      "Async results discarded because the selector was reconfigured or closed",
		},
		[]string{"operation"}, // "metadata" / "candidates" / "creation"
	)

	selectorCreationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "selector",
			Name:      "creations_total",
			Help:      "Inline creation submits by outcome",
		},
		[]string{"status"}, // "ok" / "invalid" / "error"
	)
)

// SelectorObserver feeds selector events into Prometheus.
type SelectorObserver struct{}

// StaleDropped counts a discarded async result.
func (SelectorObserver) StaleDropped(operation string) {
	selectorStaleTotal.WithLabelValues(operation).Inc()
}

// CreationSubmitted counts a finished creation submit.
func (SelectorObserver) CreationSubmitted(status string) {
	selectorCreationsTotal.WithLabelValues(status).Inc()
}
