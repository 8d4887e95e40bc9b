package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGrowthMetrics() {
	r.GrowthStepsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "multinet_growth_steps_total",
			Help: "Total number of growth simulation steps",
		},
		[]string{"run_id"},
	)

	r.GrowthActionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "multinet_growth_actions_total",
			Help: "Growth actions drawn, by layer and action kind",
		},
		[]string{"layer", "action"},
	)
}
