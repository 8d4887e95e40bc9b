// Package measures computes actor-level statistics over arbitrary layer
// subsets of a multilayer network: degree, neighborhood, exclusive
// neighborhood, relevance, and degree deviation.
//
// All measures treat an actor absent from a layer as having degree 0 and no
// neighbors on that layer. A nil layer slice selects every layer.
package measures

import (
	"math"

	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// Degree counts the distinct incident edges of an actor summed over the
// selected layers. On directed layers store.ModeAll counts in- plus
// out-edges; this is also the convention used for whole-network queries, so
// a reciprocal directed pair contributes 2.
func Degree(n *store.Network, actor string, layers []string, mode store.EdgeMode) int {
	if layers == nil {
		layers = n.LayerNames()
	}
	total := 0
	for _, l := range layers {
		total += n.IncidentEdges(actor, l, mode)
	}
	return total
}

// Neighborhood counts the distinct actors adjacent to the given actor via
// any edge on the selected layers. Unlike Degree, neighbors reachable on
// several layers are counted once.
func Neighborhood(n *store.Network, actor string, layers []string, mode store.EdgeMode) int {
	return len(neighborSet(n, actor, layers, mode))
}

// ExclusiveNeighborhood counts the neighbors reachable via the selected
// layers that are not reachable via any layer outside the selection.
func ExclusiveNeighborhood(n *store.Network, actor string, layers []string, mode store.EdgeMode) int {
	if layers == nil {
		layers = n.LayerNames()
	}
	selected := make(map[string]bool, len(layers))
	for _, l := range layers {
		selected[l] = true
	}
	var rest []string
	for _, l := range n.LayerNames() {
		if !selected[l] {
			rest = append(rest, l)
		}
	}

	inside := neighborSet(n, actor, layers, mode)
	// a full selection leaves rest nil, which neighborSet would read as
	// "all layers"; the outside set must stay empty instead
	outside := map[string]bool{}
	if len(rest) > 0 {
		outside = neighborSet(n, actor, rest, mode)
	}

	count := 0
	for a := range inside {
		if !outside[a] {
			count++
		}
	}
	return count
}

// Relevance is the fraction of an actor's global neighborhood reachable via
// the selected layers. Defined as 0 when the actor has no neighbors at all.
func Relevance(n *store.Network, actor string, layers []string, mode store.EdgeMode) float64 {
	global := Neighborhood(n, actor, nil, mode)
	if global == 0 {
		return 0
	}
	return float64(Neighborhood(n, actor, layers, mode)) / float64(global)
}

// ExclusiveRelevance is the fraction of an actor's global neighborhood
// reachable only via the selected layers. Defined as 0 when the actor has no
// neighbors at all.
func ExclusiveRelevance(n *store.Network, actor string, layers []string, mode store.EdgeMode) float64 {
	global := Neighborhood(n, actor, nil, mode)
	if global == 0 {
		return 0
	}
	return float64(ExclusiveNeighborhood(n, actor, layers, mode)) / float64(global)
}

// DegreeDeviation is the population standard deviation of an actor's
// per-layer degrees over the selected layers. It quantifies how unevenly the
// actor's connectivity is spread across layers. 0 when no layer is selected.
func DegreeDeviation(n *store.Network, actor string, layers []string, mode store.EdgeMode) float64 {
	if layers == nil {
		layers = n.LayerNames()
	}
	if len(layers) == 0 {
		return 0
	}

	degrees := make([]float64, len(layers))
	mean := 0.0
	for i, l := range layers {
		degrees[i] = float64(n.IncidentEdges(actor, l, mode))
		mean += degrees[i]
	}
	mean /= float64(len(layers))

	variance := 0.0
	for _, d := range degrees {
		variance += (d - mean) * (d - mean)
	}
	variance /= float64(len(layers))
	return math.Sqrt(variance)
}

// neighborSet builds the union of an actor's neighbor sets over the layers
func neighborSet(n *store.Network, actor string, layers []string, mode store.EdgeMode) map[string]bool {
	if layers == nil {
		layers = n.LayerNames()
	}
	set := make(map[string]bool)
	for _, l := range layers {
		for _, neighbor := range n.Neighbors(actor, l, mode) {
			set[neighbor] = true
		}
	}
	return set
}
