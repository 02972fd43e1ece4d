package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "mediator"
	// Subsystem for dispatch metrics
	subsystem = "dispatch"
)

// DispatchCollector handles all request dispatch metrics
type DispatchCollector struct {
	dispatchDuration *prometheus.HistogramVec
	dispatchesTotal  *prometheus.CounterVec
}

// NewDispatchCollector creates a new dispatch metrics collector
func NewDispatchCollector() *DispatchCollector {
	return &DispatchCollector{
		// Dispatch duration histogram
		dispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "duration_seconds",
				Help:      "Request dispatch duration distribution",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
			[]string{"request", "status"},
		),

		// Dispatch counter
		dispatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total number of requests dispatched by type and status",
			},
			[]string{"request", "status"},
		),
	}
}

// Register registers all dispatch metrics with the given Prometheus registry
func (c *DispatchCollector) Register(registry *prometheus.Registry) error {
	if registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.dispatchDuration,
		c.dispatchesTotal,
	}

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordDispatch records metrics for one dispatch
func (c *DispatchCollector) RecordDispatch(requestName string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	c.dispatchDuration.WithLabelValues(requestName, status).Observe(duration)
	c.dispatchesTotal.WithLabelValues(requestName, status).Inc()
}
