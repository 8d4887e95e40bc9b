package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.PrometheusRegistry() == nil {
		t.Fatal("Expected a backing prometheus registry")
	}

	// All metric families must be registered without collision
	families, err := r.PrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	// Counter vecs with no observations yet do not gather; the gauges do
	if len(families) == 0 {
		t.Error("Expected gauge families to gather")
	}
}

func TestUpdateStoreTotals(t *testing.T) {
	r := NewRegistry()
	r.UpdateStoreTotals(5, 3, 12, 20)

	if got := testutil.ToFloat64(r.StoreActorsTotal); got != 5 {
		t.Errorf("StoreActorsTotal = %v, want 5", got)
	}
	if got := testutil.ToFloat64(r.StoreLayersTotal); got != 3 {
		t.Errorf("StoreLayersTotal = %v, want 3", got)
	}
	if got := testutil.ToFloat64(r.StoreVerticesTotal); got != 12 {
		t.Errorf("StoreVerticesTotal = %v, want 12", got)
	}
	if got := testutil.ToFloat64(r.StoreEdgesTotal); got != 20 {
		t.Errorf("StoreEdgesTotal = %v, want 20", got)
	}
}

func TestRecordStoreOperation(t *testing.T) {
	r := NewRegistry()
	r.RecordStoreOperation("AddEdge", "ok", time.Millisecond)
	r.RecordStoreOperation("AddEdge", "ok", time.Millisecond)
	r.RecordStoreOperation("AddEdge", "error", time.Millisecond)

	if got := testutil.ToFloat64(r.StoreOperationsTotal.WithLabelValues("AddEdge", "ok")); got != 2 {
		t.Errorf("AddEdge ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.StoreOperationsTotal.WithLabelValues("AddEdge", "error")); got != 1 {
		t.Errorf("AddEdge error count = %v, want 1", got)
	}
}

func TestRecordAnalysis(t *testing.T) {
	r := NewRegistry()
	r.RecordAnalysis("louvain", "ok", 50*time.Millisecond)

	if got := testutil.ToFloat64(r.AnalysisRunsTotal.WithLabelValues("louvain", "ok")); got != 1 {
		t.Errorf("louvain run count = %v, want 1", got)
	}
}

func TestRecordGrowth(t *testing.T) {
	r := NewRegistry()
	r.RecordGrowthStep("run-1")
	r.RecordGrowthStep("run-1")
	r.RecordGrowthAction("base", "internal")

	if got := testutil.ToFloat64(r.GrowthStepsTotal.WithLabelValues("run-1")); got != 2 {
		t.Errorf("Growth steps = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.GrowthActionsTotal.WithLabelValues("base", "internal")); got != 1 {
		t.Errorf("Growth actions = %v, want 1", got)
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	a.UpdateStoreTotals(9, 0, 0, 0)

	if got := testutil.ToFloat64(b.StoreActorsTotal); got != 0 {
		t.Errorf("Second registry leaked state: %v", got)
	}
}
