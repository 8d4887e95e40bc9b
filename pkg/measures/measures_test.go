package measures

import (
	"math"
	"testing"

	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// setupMeasureTestNetwork creates two undirected layers over four actors:
// l1: u-v, u-w
// l2: u-v, u-x
func setupMeasureTestNetwork(t *testing.T) *store.Network {
	t.Helper()

	n := store.NewNetwork()
	for _, a := range []string{"u", "v", "w", "x"} {
		if err := n.AddActor(a); err != nil {
			t.Fatalf("AddActor failed: %v", err)
		}
	}
	for _, l := range []string{"l1", "l2"} {
		if err := n.AddLayer(l, false); err != nil {
			t.Fatalf("AddLayer failed: %v", err)
		}
	}
	for _, v := range []store.Vertex{
		{Actor: "u", Layer: "l1"}, {Actor: "v", Layer: "l1"}, {Actor: "w", Layer: "l1"},
		{Actor: "u", Layer: "l2"}, {Actor: "v", Layer: "l2"}, {Actor: "x", Layer: "l2"},
	} {
		if err := n.AddVertex(v.Actor, v.Layer); err != nil {
			t.Fatalf("AddVertex failed: %v", err)
		}
	}
	for _, e := range [][3]string{
		{"u", "v", "l1"}, {"u", "w", "l1"},
		{"u", "v", "l2"}, {"u", "x", "l2"},
	} {
		if err := n.AddEdge(e[0], e[1], e[2]); err != nil {
			t.Fatalf("AddEdge failed: %v", err)
		}
	}
	return n
}

func TestDegree_SumsAcrossLayers(t *testing.T) {
	n := setupMeasureTestNetwork(t)

	if got := Degree(n, "u", nil, store.ModeAll); got != 4 {
		t.Errorf("Degree(u, all) = %d, want 4", got)
	}
	if got := Degree(n, "u", []string{"l1"}, store.ModeAll); got != 2 {
		t.Errorf("Degree(u, l1) = %d, want 2", got)
	}
	// Actors absent from a layer contribute 0, never an error
	if got := Degree(n, "w", []string{"l2"}, store.ModeAll); got != 0 {
		t.Errorf("Degree(w, l2) = %d, want 0", got)
	}
	if got := Degree(n, "ghost", nil, store.ModeAll); got != 0 {
		t.Errorf("Degree(unknown actor) = %d, want 0", got)
	}
}

func TestNeighborhood_DeduplicatesAcrossLayers(t *testing.T) {
	n := setupMeasureTestNetwork(t)

	// v is a neighbor of u on both layers but counted once
	if got := Neighborhood(n, "u", nil, store.ModeAll); got != 3 {
		t.Errorf("Neighborhood(u, all) = %d, want 3", got)
	}
	if deg, nb := Degree(n, "u", []string{"l1"}, store.ModeAll), Neighborhood(n, "u", []string{"l1"}, store.ModeAll); deg != nb {
		t.Errorf("Single layer degree %d and neighborhood %d must coincide", deg, nb)
	}
}

func TestExclusiveNeighborhood(t *testing.T) {
	n := setupMeasureTestNetwork(t)

	// Only w is reachable exclusively via l1; v is also reachable via l2
	if got := ExclusiveNeighborhood(n, "u", []string{"l1"}, store.ModeAll); got != 1 {
		t.Errorf("ExclusiveNeighborhood(u, l1) = %d, want 1", got)
	}
	// The whole layer set is exclusive by definition
	if got := ExclusiveNeighborhood(n, "u", nil, store.ModeAll); got != 3 {
		t.Errorf("ExclusiveNeighborhood(u, all) = %d, want 3", got)
	}
	// Listing every layer explicitly behaves like the nil default
	if got := ExclusiveNeighborhood(n, "u", []string{"l1", "l2"}, store.ModeAll); got != 3 {
		t.Errorf("ExclusiveNeighborhood(u, [l1 l2]) = %d, want 3", got)
	}
}

func TestExclusiveNeighborhood_FullSelectionEqualsNeighborhood(t *testing.T) {
	n := store.NewNetwork()
	for _, a := range []string{"u", "v"} {
		if err := n.AddActor(a); err != nil {
			t.Fatalf("AddActor failed: %v", err)
		}
	}
	if err := n.AddLayer("only", false); err != nil {
		t.Fatalf("AddLayer failed: %v", err)
	}
	for _, a := range []string{"u", "v"} {
		if err := n.AddVertex(a, "only"); err != nil {
			t.Fatalf("AddVertex failed: %v", err)
		}
	}
	if err := n.AddEdge("u", "v", "only"); err != nil {
		t.Fatalf("AddEdge failed: %v", err)
	}

	// With no layers outside the selection nothing can shadow a neighbor
	if nb, xnb := Neighborhood(n, "u", nil, store.ModeAll), ExclusiveNeighborhood(n, "u", nil, store.ModeAll); nb != xnb {
		t.Errorf("ExclusiveNeighborhood(u, all) = %d, want %d", xnb, nb)
	}
	if got := ExclusiveRelevance(n, "u", nil, store.ModeAll); got != 1 {
		t.Errorf("ExclusiveRelevance(u, all) = %v, want 1", got)
	}
}

func TestRelevance(t *testing.T) {
	n := setupMeasureTestNetwork(t)

	if got := Relevance(n, "u", []string{"l1"}, store.ModeAll); math.Abs(got-2.0/3.0) > 1e-12 {
		t.Errorf("Relevance(u, l1) = %v, want 2/3", got)
	}
	if got := Relevance(n, "u", nil, store.ModeAll); got != 1 {
		t.Errorf("Relevance over all layers = %v, want 1", got)
	}
	if got := ExclusiveRelevance(n, "u", []string{"l1"}, store.ModeAll); math.Abs(got-1.0/3.0) > 1e-12 {
		t.Errorf("ExclusiveRelevance(u, l1) = %v, want 1/3", got)
	}
	// Isolated actor: 0/0 is defined as 0
	if err := n.AddActor("loner"); err != nil {
		t.Fatalf("AddActor failed: %v", err)
	}
	if got := Relevance(n, "loner", nil, store.ModeAll); got != 0 {
		t.Errorf("Relevance of isolated actor = %v, want 0", got)
	}
}

func TestDegreeDeviation(t *testing.T) {
	n := setupMeasureTestNetwork(t)

	// u has degree 2 on both layers: perfectly even
	if got := DegreeDeviation(n, "u", nil, store.ModeAll); got != 0 {
		t.Errorf("DegreeDeviation(u) = %v, want 0", got)
	}
	// w has degrees 1 and 0: population stddev 0.5
	if got := DegreeDeviation(n, "w", nil, store.ModeAll); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("DegreeDeviation(w) = %v, want 0.5", got)
	}
}

func TestTable(t *testing.T) {
	n := setupMeasureTestNetwork(t)

	rows := Table(n, nil, nil, store.ModeAll)
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}
	if rows[0].Actor != "u" || rows[0].Degree != 4 || rows[0].Neighborhood != 3 {
		t.Errorf("Row for u = %+v", rows[0])
	}
	for _, row := range rows {
		if row.Relevance < 0 || row.Relevance > 1 {
			t.Errorf("Relevance for %s out of range: %v", row.Actor, row.Relevance)
		}
		if row.ExclusiveRelevance > row.Relevance {
			t.Errorf("Exclusive relevance above relevance for %s", row.Actor)
		}
	}
}
