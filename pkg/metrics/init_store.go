package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initStoreMetrics() {
	r.StoreActorsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "multinet_store_actors_total",
			Help: "Total number of actors in the network",
		},
	)

	r.StoreLayersTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "multinet_store_layers_total",
			Help: "Total number of layers in the network",
		},
	)

	r.StoreVerticesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "multinet_store_vertices_total",
			Help: "Total number of actor-layer vertices in the network",
		},
	)

	r.StoreEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "multinet_store_edges_total",
			Help: "Total number of edges across all layers",
		},
	)

	r.StoreOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "multinet_store_operations_total",
			Help: "Total number of store operations",
		},
		[]string{"operation", "status"},
	)

	r.StoreOperationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "multinet_store_operation_duration_seconds",
			Help:    "Store operation duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"operation"},
	)
}
