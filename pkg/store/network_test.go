package store

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dd0wney/cluso-multinet/pkg/metrics"
)

// setupTestNetwork creates a small two-layer network:
// work (undirected): alice-bob, bob-carol
// follows (directed): alice->bob
func setupTestNetwork(t *testing.T) *Network {
	t.Helper()

	n := NewNetwork()
	for _, a := range []string{"alice", "bob", "carol"} {
		if err := n.AddActor(a); err != nil {
			t.Fatalf("AddActor(%s) failed: %v", a, err)
		}
	}
	if err := n.AddLayer("work", false); err != nil {
		t.Fatalf("AddLayer(work) failed: %v", err)
	}
	if err := n.AddLayer("follows", true); err != nil {
		t.Fatalf("AddLayer(follows) failed: %v", err)
	}
	for _, v := range []Vertex{
		{"alice", "work"}, {"bob", "work"}, {"carol", "work"},
		{"alice", "follows"}, {"bob", "follows"},
	} {
		if err := n.AddVertex(v.Actor, v.Layer); err != nil {
			t.Fatalf("AddVertex(%v) failed: %v", v, err)
		}
	}
	for _, e := range [][3]string{
		{"alice", "bob", "work"},
		{"bob", "carol", "work"},
		{"alice", "bob", "follows"},
	} {
		if err := n.AddEdge(e[0], e[1], e[2]); err != nil {
			t.Fatalf("AddEdge(%v) failed: %v", e, err)
		}
	}
	return n
}

func TestAddActor_Duplicate(t *testing.T) {
	n := setupTestNetwork(t)

	err := n.AddActor("alice")
	if !errors.Is(err, ErrDuplicateActor) {
		t.Errorf("Expected ErrDuplicateActor, got %v", err)
	}
}

func TestAddVertex_MissingReferences(t *testing.T) {
	n := setupTestNetwork(t)

	if err := n.AddVertex("dave", "work"); !errors.Is(err, ErrActorNotFound) {
		t.Errorf("Expected ErrActorNotFound for unknown actor, got %v", err)
	}
	if err := n.AddVertex("alice", "family"); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("Expected ErrLayerNotFound for unknown layer, got %v", err)
	}
	if err := n.AddVertex("alice", "work"); !errors.Is(err, ErrDuplicateVertex) {
		t.Errorf("Expected ErrDuplicateVertex, got %v", err)
	}
}

func TestAddEdge_Validation(t *testing.T) {
	n := setupTestNetwork(t)

	if err := n.AddEdge("carol", "alice", "follows"); !errors.Is(err, ErrVertexNotFound) {
		t.Errorf("Expected ErrVertexNotFound for carol on follows, got %v", err)
	}
	if err := n.AddEdge("alice", "alice", "work"); !errors.Is(err, ErrSelfEdge) {
		t.Errorf("Expected ErrSelfEdge, got %v", err)
	}
	if err := n.AddEdge("bob", "alice", "work"); !errors.Is(err, ErrDuplicateEdge) {
		t.Errorf("Expected ErrDuplicateEdge for reversed undirected pair, got %v", err)
	}
}

func TestAddEdge_DirectedAllowsReverse(t *testing.T) {
	n := setupTestNetwork(t)

	if err := n.AddEdge("bob", "alice", "follows"); err != nil {
		t.Fatalf("Reverse directed edge should be distinct: %v", err)
	}
	if !n.HasEdge("bob", "alice", "follows") {
		t.Error("Expected bob->alice to exist")
	}
}

func TestHasEdge_UndirectedSymmetry(t *testing.T) {
	n := setupTestNetwork(t)

	if !n.HasEdge("bob", "alice", "work") {
		t.Error("Undirected edge should match either endpoint order")
	}
	if n.HasEdge("bob", "alice", "follows") {
		t.Error("Directed edge should not match reversed order")
	}
}

func TestRemoveVertex_CascadesEdges(t *testing.T) {
	n := setupTestNetwork(t)

	if err := n.RemoveVertex("bob", "work"); err != nil {
		t.Fatalf("RemoveVertex failed: %v", err)
	}
	if n.HasEdge("alice", "bob", "work") || n.HasEdge("bob", "carol", "work") {
		t.Error("Incident edges should be removed with the vertex")
	}
	stats := n.GetStatistics()
	if stats.EdgeCount != 1 {
		t.Errorf("Expected 1 remaining edge, got %d", stats.EdgeCount)
	}
	// The follows copy of bob is untouched
	if !n.HasVertex("bob", "follows") {
		t.Error("Removing a vertex must not affect the actor's other layers")
	}
}

func TestRemoveEdge(t *testing.T) {
	n := setupTestNetwork(t)

	if err := n.RemoveEdge("bob", "alice", "work"); err != nil {
		t.Fatalf("RemoveEdge with reversed endpoints failed: %v", err)
	}
	if n.HasEdge("alice", "bob", "work") {
		t.Error("Edge should be gone")
	}
	if err := n.RemoveEdge("alice", "bob", "work"); !errors.Is(err, ErrEdgeNotFound) {
		t.Errorf("Expected ErrEdgeNotFound, got %v", err)
	}
}

func TestNeighbors_DirectionModes(t *testing.T) {
	n := setupTestNetwork(t)

	if got := n.Neighbors("alice", "follows", ModeOut); len(got) != 1 || got[0] != "bob" {
		t.Errorf("ModeOut = %v, want [bob]", got)
	}
	if got := n.Neighbors("alice", "follows", ModeIn); len(got) != 0 {
		t.Errorf("ModeIn = %v, want empty", got)
	}
	if got := n.Neighbors("bob", "follows", ModeIn); len(got) != 1 || got[0] != "alice" {
		t.Errorf("ModeIn for bob = %v, want [alice]", got)
	}
	// Absent actor is not an error
	if got := n.Neighbors("carol", "follows", ModeAll); got != nil {
		t.Errorf("Absent actor should have no neighbors, got %v", got)
	}
}

func TestIncidentEdges_ReciprocalDirectedPair(t *testing.T) {
	n := setupTestNetwork(t)

	if err := n.AddEdge("bob", "alice", "follows"); err != nil {
		t.Fatalf("AddEdge failed: %v", err)
	}
	if got := n.IncidentEdges("alice", "follows", ModeAll); got != 2 {
		t.Errorf("ModeAll should count in plus out; got %d, want 2", got)
	}
	if got := n.IncidentEdges("alice", "follows", ModeOut); got != 1 {
		t.Errorf("ModeOut = %d, want 1", got)
	}
}

func TestVertices_Filters(t *testing.T) {
	n := setupTestNetwork(t)

	all := n.Vertices(Filter{})
	if len(all) != 5 {
		t.Fatalf("Expected 5 vertices, got %d", len(all))
	}
	work := n.Vertices(Filter{Layers: []string{"work"}})
	if len(work) != 3 {
		t.Errorf("Expected 3 work vertices, got %d", len(work))
	}
	aliceOnly := n.Vertices(Filter{Actors: []string{"alice"}})
	if len(aliceOnly) != 2 {
		t.Errorf("Expected 2 alice vertices, got %d", len(aliceOnly))
	}
}

func TestEdges_CanonicalAndOrdered(t *testing.T) {
	n := setupTestNetwork(t)

	edges := n.Edges(Filter{Layers: []string{"work"}})
	if len(edges) != 2 {
		t.Fatalf("Expected 2 work edges, got %d", len(edges))
	}
	// Undirected edges are reported once with sorted endpoints
	if edges[0].From != "alice" || edges[0].To != "bob" {
		t.Errorf("First edge = %v, want alice-bob", edges[0])
	}
	if edges[1].From != "bob" || edges[1].To != "carol" {
		t.Errorf("Second edge = %v, want bob-carol", edges[1])
	}
}

func TestAlign_InsertsMissingVertices(t *testing.T) {
	n := setupTestNetwork(t)

	if err := n.Align(nil, nil); err != nil {
		t.Fatalf("Align failed: %v", err)
	}
	if !n.HasVertex("carol", "follows") {
		t.Error("Align should add carol to follows")
	}
	if len(n.Neighbors("carol", "follows", ModeAll)) != 0 {
		t.Error("Aligned vertices must have no incident edges")
	}
	stats := n.GetStatistics()
	if stats.VertexCount != 6 {
		t.Errorf("Expected 6 vertices after align, got %d", stats.VertexCount)
	}
}

func TestAlign_UnknownReferences(t *testing.T) {
	n := setupTestNetwork(t)

	if err := n.Align([]string{"dave"}, nil); !errors.Is(err, ErrActorNotFound) {
		t.Errorf("Expected ErrActorNotFound, got %v", err)
	}
	if err := n.Align(nil, []string{"family"}); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("Expected ErrLayerNotFound, got %v", err)
	}
}

func TestStoreError_Message(t *testing.T) {
	err := NewError("AddEdge").Edge("a", "b", "work").Cause(ErrDuplicateEdge).Err()
	want := `AddEdge edge "a->b" (layer work): edge already exists`
	if err.Error() != want {
		t.Errorf("Error message = %q, want %q", err.Error(), want)
	}
	if !IsDuplicate(err) {
		t.Error("IsDuplicate should match through the wrapper")
	}
}

func TestMutations_RecordOperationMetrics(t *testing.T) {
	reg := metrics.NewRegistry()
	n := NewNetwork(WithMetrics(reg))

	if err := n.AddActor("alice"); err != nil {
		t.Fatalf("AddActor failed: %v", err)
	}
	if err := n.AddLayer("work", false); err != nil {
		t.Fatalf("AddLayer failed: %v", err)
	}
	if err := n.AddVertex("alice", "work"); err != nil {
		t.Fatalf("AddVertex failed: %v", err)
	}
	// Duplicate lands in the error bucket
	if err := n.AddVertex("alice", "work"); !errors.Is(err, ErrDuplicateVertex) {
		t.Fatalf("Expected ErrDuplicateVertex, got %v", err)
	}
	if err := n.Align(nil, nil); err != nil {
		t.Fatalf("Align failed: %v", err)
	}

	cases := []struct {
		operation, status string
		want              float64
	}{
		{"AddActor", "ok", 1},
		{"AddLayer", "ok", 1},
		{"AddVertex", "ok", 1},
		{"AddVertex", "error", 1},
		{"Align", "ok", 1},
	}
	for _, c := range cases {
		got := testutil.ToFloat64(reg.StoreOperationsTotal.WithLabelValues(c.operation, c.status))
		if got != c.want {
			t.Errorf("StoreOperationsTotal{%s,%s} = %v, want %v", c.operation, c.status, got, c.want)
		}
	}
	if got := testutil.ToFloat64(reg.StoreActorsTotal); got != 1 {
		t.Errorf("StoreActorsTotal = %v, want 1", got)
	}
}
