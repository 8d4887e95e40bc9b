package summary

import (
	"math"
	"testing"

	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// setupSummaryTestNetwork creates two undirected layers:
// triangle: a-b, b-c, a-c plus the isolated vertex d
// chain:    a-b, b-c, c-d
func setupSummaryTestNetwork(t *testing.T) *store.Network {
	t.Helper()

	n := store.NewNetwork()
	for _, a := range []string{"a", "b", "c", "d"} {
		if err := n.AddActor(a); err != nil {
			t.Fatalf("AddActor failed: %v", err)
		}
	}
	for _, l := range []string{"triangle", "chain"} {
		if err := n.AddLayer(l, false); err != nil {
			t.Fatalf("AddLayer failed: %v", err)
		}
		for _, a := range []string{"a", "b", "c", "d"} {
			if err := n.AddVertex(a, l); err != nil {
				t.Fatalf("AddVertex failed: %v", err)
			}
		}
	}
	for _, e := range [][3]string{
		{"a", "b", "triangle"}, {"b", "c", "triangle"}, {"a", "c", "triangle"},
		{"a", "b", "chain"}, {"b", "c", "chain"}, {"c", "d", "chain"},
	} {
		if err := n.AddEdge(e[0], e[1], e[2]); err != nil {
			t.Fatalf("AddEdge failed: %v", err)
		}
	}
	return n
}

func rowByName(t *testing.T, table *Table, name string) LayerRow {
	t.Helper()
	for _, r := range table.Rows {
		if r.Layer == name {
			return r
		}
	}
	t.Fatalf("No row for layer %q", name)
	return LayerRow{}
}

func TestSummarize_TriangleLayer(t *testing.T) {
	n := setupSummaryTestNetwork(t)
	table := Summarize(n, Options{})

	row := rowByName(t, table, "triangle")
	if row.Order != 4 || row.Size != 3 {
		t.Errorf("Order/Size = %d/%d, want 4/3", row.Order, row.Size)
	}
	if row.Components != 2 {
		t.Errorf("Components = %d, want 2 (triangle plus isolated d)", row.Components)
	}
	// 3 edges over C(4,2)=6 possible
	if math.Abs(row.Density-0.5) > 1e-12 {
		t.Errorf("Density = %v, want 0.5", row.Density)
	}
	// a, b, c each fully clustered; d contributes 0
	if math.Abs(row.Clustering-0.75) > 1e-12 {
		t.Errorf("Clustering = %v, want 0.75", row.Clustering)
	}
	if row.AvgPathLength != 1 || row.Diameter != 1 {
		t.Errorf("AvgPathLength/Diameter = %v/%d, want 1/1", row.AvgPathLength, row.Diameter)
	}
}

func TestSummarize_ChainLayer(t *testing.T) {
	n := setupSummaryTestNetwork(t)
	table := Summarize(n, Options{})

	row := rowByName(t, table, "chain")
	if row.Components != 1 {
		t.Errorf("Components = %d, want 1", row.Components)
	}
	if row.Clustering != 0 {
		t.Errorf("Clustering = %v, want 0 on a path graph", row.Clustering)
	}
	if row.Diameter != 3 {
		t.Errorf("Diameter = %d, want 3", row.Diameter)
	}
	// Distances: 1,2,3,1,2,1 each way over 12 ordered pairs
	if math.Abs(row.AvgPathLength-10.0/6.0) > 1e-12 {
		t.Errorf("AvgPathLength = %v, want 10/6", row.AvgPathLength)
	}
}

func TestSummarize_FlattenedRow(t *testing.T) {
	n := setupSummaryTestNetwork(t)
	table := Summarize(n, Options{})

	flat := table.Flattened
	if flat.Layer != FlattenedName {
		t.Errorf("Flattened row label = %q, want %q", flat.Layer, FlattenedName)
	}
	// Union: a-b, b-c, a-c, c-d
	if flat.Order != 4 || flat.Size != 4 {
		t.Errorf("Order/Size = %d/%d, want 4/4", flat.Order, flat.Size)
	}
	if flat.Components != 1 {
		t.Errorf("Components = %d, want 1", flat.Components)
	}
	if flat.Directed {
		t.Error("Flattening undirected layers must stay undirected")
	}
}

func TestSummarize_DirectedDensity(t *testing.T) {
	n := store.NewNetwork()
	if err := n.AddLayer("follows", true); err != nil {
		t.Fatalf("AddLayer failed: %v", err)
	}
	for _, a := range []string{"a", "b", "c"} {
		if err := n.AddActor(a); err != nil {
			t.Fatalf("AddActor failed: %v", err)
		}
		if err := n.AddVertex(a, "follows"); err != nil {
			t.Fatalf("AddVertex failed: %v", err)
		}
	}
	for _, e := range [][2]string{{"a", "b"}, {"b", "a"}, {"b", "c"}} {
		if err := n.AddEdge(e[0], e[1], "follows"); err != nil {
			t.Fatalf("AddEdge failed: %v", err)
		}
	}

	table := Summarize(n, Options{})
	row := rowByName(t, table, "follows")
	// 3 arcs over 3*2 ordered pairs
	if math.Abs(row.Density-0.5) > 1e-12 {
		t.Errorf("Directed density = %v, want 0.5", row.Density)
	}
}

func TestSummarize_EmptyNetwork(t *testing.T) {
	table := Summarize(store.NewNetwork(), Options{})
	if len(table.Rows) != 0 {
		t.Errorf("Expected no layer rows, got %d", len(table.Rows))
	}
	if table.Flattened.Layer != FlattenedName || table.Flattened.Order != 0 {
		t.Errorf("Unexpected flattened row: %+v", table.Flattened)
	}
}
