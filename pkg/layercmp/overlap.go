package layercmp

import (
	"sort"
	"strings"

	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// setCounts holds the contingency counts of two sets within a universe:
// a = |A∩B|, b = |A\B|, c = |B\A|, d = |U| - a - b - c.
type setCounts struct {
	a, b, c, d float64
}

// overlapValue applies one overlap formula to the contingency counts.
// Two empty sets are taken as fully overlapping for Jaccard and Coverage,
// so self-comparison of an empty layer still yields 1.
func overlapValue(m Method, s setCounts) float64 {
	switch m {
	case Jaccard:
		if s.a+s.b+s.c == 0 {
			return 1
		}
		return s.a / (s.a + s.b + s.c)
	case Coverage:
		// Directional: fraction of the first set contained in the second
		if s.a+s.b == 0 {
			return 1
		}
		return s.a / (s.a + s.b)
	case SimpleMatching:
		n := s.a + s.b + s.c + s.d
		if n == 0 {
			return 1
		}
		return (s.a + s.d) / n
	case RussellRao:
		n := s.a + s.b + s.c + s.d
		if n == 0 {
			return 0
		}
		return s.a / n
	case Kulczynski2:
		if s.a+s.b == 0 || s.a+s.c == 0 {
			return 0
		}
		return (s.a/(s.a+s.b) + s.a/(s.a+s.c)) / 2
	case Hamann:
		n := s.a + s.b + s.c + s.d
		if n == 0 {
			return 1
		}
		return (s.a + s.d - s.b - s.c) / n
	default:
		return 0
	}
}

// targetSet builds the comparison set of one layer, keyed by a canonical
// string. Edges and triangles are taken as unordered actor tuples so that
// layers of different directionality remain comparable.
func targetSet(n *store.Network, layer string, target Target) map[string]bool {
	set := make(map[string]bool)
	switch target {
	case TargetActors:
		for _, v := range n.Vertices(store.Filter{Layers: []string{layer}}) {
			set[v.Actor] = true
		}
	case TargetEdges:
		for _, e := range n.Edges(store.Filter{Layers: []string{layer}}) {
			set[pairKey(e.From, e.To)] = true
		}
	case TargetTriangles:
		for _, t := range layerTriangles(n, layer) {
			set[strings.Join(t[:], "\x00")] = true
		}
	}
	return set
}

// layerTriangles enumerates the distinct triangles of one layer, treating
// edges as undirected, as sorted actor triples.
func layerTriangles(n *store.Network, layer string) [][3]string {
	vertices := n.Vertices(store.Filter{Layers: []string{layer}})
	adj := make(map[string]map[string]bool, len(vertices))
	for _, v := range vertices {
		set := make(map[string]bool)
		for _, nb := range n.Neighbors(v.Actor, layer, store.ModeAll) {
			set[nb] = true
		}
		adj[v.Actor] = set
	}

	var triangles [][3]string
	for u, uAdj := range adj {
		neighbors := make([]string, 0, len(uAdj))
		for v := range uAdj {
			if v > u { // count each triple once via ordered enumeration
				neighbors = append(neighbors, v)
			}
		}
		sort.Strings(neighbors)
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				if adj[neighbors[i]][neighbors[j]] {
					triangles = append(triangles, [3]string{u, neighbors[i], neighbors[j]})
				}
			}
		}
	}
	return triangles
}

// universeSize computes |U| for the overlap denominators: the union of the
// target sets over every layer of the network.
func universeSize(n *store.Network, target Target) int {
	switch target {
	case TargetActors:
		return len(n.Actors())
	default:
		union := make(map[string]bool)
		for _, l := range n.LayerNames() {
			for k := range targetSet(n, l, target) {
				union[k] = true
			}
		}
		return len(union)
	}
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}

// compareOverlap computes one overlap-family value for a layer pair
func compareOverlap(n *store.Network, l1, l2 string, m Method, target Target) float64 {
	setA := targetSet(n, l1, target)
	setB := targetSet(n, l2, target)

	var s setCounts
	for k := range setA {
		if setB[k] {
			s.a++
		} else {
			s.b++
		}
	}
	for k := range setB {
		if !setA[k] {
			s.c++
		}
	}
	s.d = float64(universeSize(n, target)) - s.a - s.b - s.c
	return overlapValue(m, s)
}
