package store

import "sort"

// Flattened is the projection of all layers into a single derived layer:
// the union of vertices (by actor) and the union of edges across layers.
// The projection is undirected unless every source layer is directed.
type Flattened struct {
	Directed bool
	Actors   []string   // actors present in at least one layer, sorted
	Edges    [][2]string // distinct endpoint pairs, canonicalized when undirected
}

// Flatten computes the flattening projection of the whole network.
// An edge present on several layers appears once. Reciprocal directed edges
// that collapse onto the same undirected pair also appear once.
func (n *Network) Flatten() *Flattened {
	n.mu.RLock()
	defer n.mu.RUnlock()

	directed := len(n.layers) > 0
	for _, ld := range n.layers {
		if !ld.directed {
			directed = false
			break
		}
	}

	actorSet := make(map[string]bool)
	edgeSet := make(map[[2]string]bool)
	for _, ld := range n.layers {
		for a := range ld.vertices {
			actorSet[a] = true
		}
		for from, succs := range ld.out {
			for to := range succs {
				if !ld.directed && to < from {
					continue
				}
				key := [2]string{from, to}
				if !directed && to < from {
					key = [2]string{to, from}
				}
				edgeSet[key] = true
			}
		}
	}

	flat := &Flattened{Directed: directed}
	for a := range actorSet {
		flat.Actors = append(flat.Actors, a)
	}
	sort.Strings(flat.Actors)
	for key := range edgeSet {
		flat.Edges = append(flat.Edges, key)
	}
	sort.Slice(flat.Edges, func(i, j int) bool {
		if flat.Edges[i][0] != flat.Edges[j][0] {
			return flat.Edges[i][0] < flat.Edges[j][0]
		}
		return flat.Edges[i][1] < flat.Edges[j][1]
	})
	return flat
}

// NeighborSets builds the undirected adjacency of the flattened projection
func (f *Flattened) NeighborSets() map[string]map[string]bool {
	adj := make(map[string]map[string]bool, len(f.Actors))
	for _, a := range f.Actors {
		adj[a] = make(map[string]bool)
	}
	for _, e := range f.Edges {
		adj[e[0]][e[1]] = true
		adj[e[1]][e[0]] = true
	}
	return adj
}
