// Package metrics exposes Prometheus collectors for the HTTP layer and selectors.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "recordkit"

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			selectorStaleTotal,
			selectorCreationsTotal,
		)
	})
}
