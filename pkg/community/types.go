// Package community detects communities in a multilayer network with two
// independent algorithms: generalized modularity optimization, which assigns
// every actor-layer vertex to exactly one group, and clique percolation,
// which finds overlapping communities that may leave vertices unassigned.
package community

import (
	"sort"

	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// Partition is the result of modularity optimization: a disjoint,
// exhaustive grouping of the network's vertices.
type Partition struct {
	Assignments map[store.Vertex]int // every vertex maps to exactly one group
	Communities [][]store.Vertex     // indexed by group id, members sorted
	Modularity  float64              // objective value of the final partition
}

// rebuildCommunities derives the Communities slice from Assignments,
// renumbering groups by their first member in (actor, layer) order.
func (p *Partition) rebuildCommunities() {
	vertices := make([]store.Vertex, 0, len(p.Assignments))
	for v := range p.Assignments {
		vertices = append(vertices, v)
	}
	sort.Slice(vertices, func(i, j int) bool {
		if vertices[i].Actor != vertices[j].Actor {
			return vertices[i].Actor < vertices[j].Actor
		}
		return vertices[i].Layer < vertices[j].Layer
	})

	renumber := make(map[int]int)
	p.Communities = nil
	for _, v := range vertices {
		old := p.Assignments[v]
		id, ok := renumber[old]
		if !ok {
			id = len(p.Communities)
			renumber[old] = id
			p.Communities = append(p.Communities, nil)
		}
		p.Assignments[v] = id
		p.Communities[id] = append(p.Communities[id], v)
	}
}

// OverlapCommunity is one percolation community: a set of (actor, layer)
// memberships. The same vertex may appear in several communities.
type OverlapCommunity struct {
	ID      int
	Members []store.Vertex // sorted by (actor, layer)
}

// OverlapResult is the clique-percolation output. Membership is neither
// exclusive nor exhaustive.
type OverlapResult struct {
	K           int
	M           int
	Cliques     []Clique
	Communities []OverlapCommunity
}

// Clique is a maximal multilayer clique: a set of actors pairwise adjacent
// on every layer of Layers.
type Clique struct {
	Actors []string // sorted
	Layers []string // sorted
}
