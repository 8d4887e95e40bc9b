// Package paths computes multilayer distances as Pareto fronts: a path's
// length is a vector with one component per layer counting the edges it uses
// on that layer, and the distance between two actors is the set of all
// non-dominated length vectors over all paths connecting them.
package paths

import (
	"sort"
	"time"

	"github.com/dd0wney/cluso-multinet/pkg/metrics"
	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// ParetoResult holds the Pareto front of path-length vectors between two
// actors. Each vector of Front is indexed like Layers. An empty front means
// no path exists.
type ParetoResult struct {
	From   string
	To     string
	Layers []string
	Front  [][]int
}

// Options configures the search
type Options struct {
	Metrics *metrics.Registry
}

// Dominates reports whether u is component-wise no worse than v and
// strictly better in at least one component.
func Dominates(u, v []int) bool {
	strict := false
	for i := range u {
		if u[i] > v[i] {
			return false
		}
		if u[i] < v[i] {
			strict = true
		}
	}
	return strict
}

// ParetoDistances computes the Pareto front of path-length vectors from one
// actor to another. Paths may cross layers at shared actors; directed layers
// are traversed edge-forward only.
//
// The search is a multi-criteria generalization of BFS: it keeps a frontier
// of non-dominated vectors per actor and relaxes edges until the fronts are
// stable. Vectors only grow component-wise along a path, so the search
// terminates on any finite graph.
func ParetoDistances(n *store.Network, from, to string, opts Options) (*ParetoResult, error) {
	if !n.HasActor(from) {
		return nil, store.ActorNotFoundError("ParetoDistances", from)
	}
	if !n.HasActor(to) {
		return nil, store.ActorNotFoundError("ParetoDistances", to)
	}
	start := time.Now()

	layers := n.LayerNames()
	result := &ParetoResult{From: from, To: to, Layers: layers}

	// Cache per-layer forward neighbor lists once; the search revisits actors.
	neighbors := make([]map[string][]string, len(layers))
	for i, l := range layers {
		neighbors[i] = make(map[string][]string)
		for _, v := range n.Vertices(store.Filter{Layers: []string{l}}) {
			neighbors[i][v.Actor] = n.Neighbors(v.Actor, l, store.ModeOut)
		}
	}

	fronts := make(map[string][][]int)
	origin := make([]int, len(layers))
	fronts[from] = [][]int{origin}

	type state struct {
		actor string
		vec   []int
	}
	queue := []state{{actor: from, vec: origin}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		// A queued vector may have been dominated since it was pushed
		if !onFront(fronts[cur.actor], cur.vec) {
			continue
		}

		for li := range layers {
			for _, next := range neighbors[li][cur.actor] {
				vec := make([]int, len(cur.vec))
				copy(vec, cur.vec)
				vec[li]++
				if merged := mergeFront(fronts, next, vec); merged {
					queue = append(queue, state{actor: next, vec: vec})
				}
			}
		}
	}

	result.Front = fronts[to]
	sortFront(result.Front)

	if opts.Metrics != nil {
		opts.Metrics.RecordAnalysis("pareto_distance", "ok", time.Since(start))
	}
	return result, nil
}

// mergeFront inserts vec into the actor's front unless an existing vector
// dominates or equals it; vectors the new one dominates are dropped.
func mergeFront(fronts map[string][][]int, actor string, vec []int) bool {
	front := fronts[actor]
	for _, f := range front {
		if equalVec(f, vec) || Dominates(f, vec) {
			return false
		}
	}
	kept := front[:0]
	for _, f := range front {
		if !Dominates(vec, f) {
			kept = append(kept, f)
		}
	}
	fronts[actor] = append(kept, vec)
	return true
}

func onFront(front [][]int, vec []int) bool {
	for _, f := range front {
		if equalVec(f, vec) {
			return true
		}
	}
	return false
}

func equalVec(u, v []int) bool {
	for i := range u {
		if u[i] != v[i] {
			return false
		}
	}
	return true
}

func sortFront(front [][]int) {
	sort.Slice(front, func(i, j int) bool {
		for k := range front[i] {
			if front[i][k] != front[j][k] {
				return front[i][k] < front[j][k]
			}
		}
		return false
	})
}
