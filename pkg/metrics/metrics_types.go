package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the engine
type Registry struct {
	// Store metrics
	StoreActorsTotal       prometheus.Gauge
	StoreLayersTotal       prometheus.Gauge
	StoreVerticesTotal     prometheus.Gauge
	StoreEdgesTotal        prometheus.Gauge
	StoreOperationsTotal   *prometheus.CounterVec
	StoreOperationDuration *prometheus.HistogramVec

	// Analysis metrics (measures, comparison, paths, communities)
	AnalysisRunsTotal *prometheus.CounterVec
	AnalysisDuration  *prometheus.HistogramVec

	// Growth simulator metrics
	GrowthStepsTotal   *prometheus.CounterVec
	GrowthActionsTotal *prometheus.CounterVec

	registry *prometheus.Registry
	mu       sync.Mutex
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}
	r.initStoreMetrics()
	r.initAnalysisMetrics()
	r.initGrowthMetrics()
	return r
}

// PrometheusRegistry returns the underlying prometheus registry for exposition
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}
