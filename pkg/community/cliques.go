package community

import (
	"sort"

	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// maximalCliques enumerates the maximal multilayer cliques with at least k
// actors pairwise adjacent on at least m common layers. Adjacency on
// directed layers is taken in either direction. A pair (C, L) is maximal
// when no actor can be added while preserving the full layer set L; a larger
// actor set with a smaller (but still valid) layer set is reported as its
// own clique.
//
// The enumeration is a Bron-Kerbosch variant carrying the common layer set
// alongside the growing clique, with the excluded set guarding against
// re-reporting cliques found on earlier branches.
func maximalCliques(n *store.Network, k, m int) []Clique {
	actors := n.Actors()
	layers := n.LayerNames()
	support := buildSupport(n)

	all := make(layerSet, len(layers))
	for _, l := range layers {
		all[l] = true
	}

	var out []Clique
	var expand func(clique []string, common layerSet, cand, excl []string)
	expand = func(clique []string, common layerSet, cand, excl []string) {
		maximal := true
		for _, v := range excl {
			if len(commonLayers(support, v, clique, common)) == len(common) {
				maximal = false
				break
			}
		}
		if maximal {
			for _, v := range cand {
				if len(commonLayers(support, v, clique, common)) == len(common) {
					maximal = false
					break
				}
			}
		}
		if maximal && len(clique) >= k && len(common) >= m {
			out = append(out, newClique(clique, common))
		}

		remaining := cand
		for idx, v := range remaining {
			sub := commonLayers(support, v, clique, common)
			if len(sub) < m {
				continue
			}
			next := append(append([]string(nil), clique...), v)

			var nextCand, nextExcl []string
			for _, u := range remaining[idx+1:] {
				if len(commonLayers(support, u, next, sub)) >= m {
					nextCand = append(nextCand, u)
				}
			}
			for _, u := range excl {
				if len(commonLayers(support, u, next, sub)) >= m {
					nextExcl = append(nextExcl, u)
				}
			}
			// Earlier siblings act as excluded vertices for this branch
			for _, u := range remaining[:idx] {
				if len(commonLayers(support, u, next, sub)) >= m {
					nextExcl = append(nextExcl, u)
				}
			}
			expand(next, sub, nextCand, nextExcl)
		}
	}

	expand(nil, all, actors, nil)
	return out
}

type layerSet map[string]bool

// buildSupport maps each unordered actor pair to the set of layers carrying
// an edge between them
func buildSupport(n *store.Network) map[[2]string]layerSet {
	support := make(map[[2]string]layerSet)
	for _, e := range n.Edges(store.Filter{}) {
		key := [2]string{e.From, e.To}
		if key[1] < key[0] {
			key[0], key[1] = key[1], key[0]
		}
		if support[key] == nil {
			support[key] = make(layerSet)
		}
		support[key][e.Layer] = true
	}
	return support
}

// commonLayers intersects the bound layer set with the layers on which v is
// adjacent to every member of the clique
func commonLayers(support map[[2]string]layerSet, v string, clique []string, bound layerSet) layerSet {
	result := bound
	for _, u := range clique {
		key := [2]string{u, v}
		if key[1] < key[0] {
			key[0], key[1] = key[1], key[0]
		}
		pair := support[key]
		if pair == nil {
			return nil
		}
		narrowed := make(layerSet)
		for l := range result {
			if pair[l] {
				narrowed[l] = true
			}
		}
		if len(narrowed) == 0 {
			return nil
		}
		result = narrowed
	}
	if len(clique) == 0 {
		// No pairs to constrain; copy so callers can narrow freely
		copied := make(layerSet, len(bound))
		for l := range bound {
			copied[l] = true
		}
		return copied
	}
	return result
}

func newClique(actors []string, layers layerSet) Clique {
	c := Clique{
		Actors: append([]string(nil), actors...),
		Layers: make([]string, 0, len(layers)),
	}
	sort.Strings(c.Actors)
	for l := range layers {
		c.Layers = append(c.Layers, l)
	}
	sort.Strings(c.Layers)
	return c
}
