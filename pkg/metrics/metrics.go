package metrics

import (
	"time"
)

// UpdateStoreTotals refreshes the store size gauges
func (r *Registry) UpdateStoreTotals(actors, layers, vertices, edges int) {
	r.StoreActorsTotal.Set(float64(actors))
	r.StoreLayersTotal.Set(float64(layers))
	r.StoreVerticesTotal.Set(float64(vertices))
	r.StoreEdgesTotal.Set(float64(edges))
}

// RecordStoreOperation records a store mutation with its duration
func (r *Registry) RecordStoreOperation(operation, status string, duration time.Duration) {
	r.StoreOperationsTotal.WithLabelValues(operation, status).Inc()
	r.StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAnalysis records an analysis run (measure table, comparison matrix,
// Pareto search, community detection)
func (r *Registry) RecordAnalysis(algorithm, status string, duration time.Duration) {
	r.AnalysisRunsTotal.WithLabelValues(algorithm, status).Inc()
	r.AnalysisDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// RecordGrowthStep records one simulation step for a run
func (r *Registry) RecordGrowthStep(runID string) {
	r.GrowthStepsTotal.WithLabelValues(runID).Inc()
}

// RecordGrowthAction records a drawn action for a layer
func (r *Registry) RecordGrowthAction(layer, action string) {
	r.GrowthActionsTotal.WithLabelValues(layer, action).Inc()
}
