// Package metrics holds the Prometheus instrumentation for the checkout
// and interview flows. Each concern declares its collectors in its own
// file (payments.go, ai.go) and enqueues them from init(); main flushes
// the queue once before the /metrics endpoint is mounted.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once       sync.Once
	collectors []prometheus.Collector
)

// register enqueues collectors for MustRegister. Called from init() only.
func register(cs ...prometheus.Collector) {
	collectors = append(collectors, cs...)
}

// MustRegister flushes the queue into the default registry. Safe to call
// more than once; only the first call registers.
func MustRegister() {
	once.Do(func() {
		if len(collectors) > 0 {
			prometheus.MustRegister(collectors...)
		}
	})
}
