package community

import (
	"math/rand"
	"time"

	"github.com/dd0wney/cluso-multinet/pkg/metrics"
	"github.com/dd0wney/cluso-multinet/pkg/store"
	"github.com/dd0wney/cluso-multinet/pkg/validation"
)

// LouvainOptions configures generalized modularity optimization
type LouvainOptions struct {
	// Omega is the inter-layer coupling weight linking each actor's copies
	// across layers. Larger values bias same-actor vertices toward the same
	// group; 0 decouples the layers entirely.
	Omega float64
	// MaxPasses bounds the aggregate-and-refine passes
	MaxPasses int
	// Seed drives the vertex visiting order. The result is a local optimum
	// and depends on this order; a fixed seed makes runs reproducible.
	Seed    int64
	Metrics *metrics.Registry
}

// DefaultLouvainOptions returns sensible defaults
func DefaultLouvainOptions() LouvainOptions {
	return LouvainOptions{
		Omega:     1.0,
		MaxPasses: 10,
		Seed:      1,
	}
}

// Louvain assigns every (actor, layer) vertex to exactly one group by
// hierarchical modularity optimization over the coupled supra-graph:
// intra-layer edges carry weight 1 (directed edges are treated as
// undirected), and each actor's vertices on different layers are pairwise
// linked with weight Omega.
//
// The heuristic is a bottom-up local-move phase followed by aggregation,
// repeated on the aggregated graph. It is not guaranteed globally optimal;
// ties between equal-gain moves are broken toward the lowest group index,
// and the visiting order is the seeded shuffle documented on Options.Seed.
func Louvain(n *store.Network, opts LouvainOptions) (*Partition, error) {
	err := validation.NewConfigValidator("LouvainOptions").
		NonNegativeFloat("Omega", opts.Omega).
		MinInt("MaxPasses", opts.MaxPasses, 1).
		Err()
	if err != nil {
		return nil, err
	}
	start := time.Now()

	vertices := n.Vertices(store.Filter{})
	index := make(map[store.Vertex]int, len(vertices))
	for i, v := range vertices {
		index[v] = i
	}

	g := newSupraGraph(len(vertices))
	for _, e := range n.Edges(store.Filter{}) {
		u := index[store.Vertex{Actor: e.From, Layer: e.Layer}]
		v := index[store.Vertex{Actor: e.To, Layer: e.Layer}]
		g.addWeight(u, v, 1)
	}
	if opts.Omega > 0 {
		byActor := make(map[string][]int)
		for i, v := range vertices {
			byActor[v.Actor] = append(byActor[v.Actor], i)
		}
		for _, copies := range byActor {
			for i := 0; i < len(copies); i++ {
				for j := i + 1; j < len(copies); j++ {
					g.addWeight(copies[i], copies[j], opts.Omega)
				}
			}
		}
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	assignment := make([]int, len(vertices))
	for i := range assignment {
		assignment[i] = i
	}

	level := g
	for pass := 0; pass < opts.MaxPasses; pass++ {
		comm, moved := localMove(level, rng)
		if !moved {
			break
		}
		comm = compactLabels(comm)
		for i := range assignment {
			assignment[i] = comm[assignment[i]]
		}
		next := level.aggregate(comm)
		if next.size() == level.size() {
			break
		}
		level = next
	}

	p := &Partition{Assignments: make(map[store.Vertex]int, len(vertices))}
	for i, v := range vertices {
		p.Assignments[v] = assignment[i]
	}
	p.Modularity = g.modularity(assignment)
	p.rebuildCommunities()

	if opts.Metrics != nil {
		opts.Metrics.RecordAnalysis("louvain", "ok", time.Since(start))
	}
	return p, nil
}

// supraGraph is a weighted undirected graph over vertex indices.
// Aggregated levels carry intra-community weight as self-loops.
type supraGraph struct {
	adj  []map[int]float64
	self []float64
	m2   float64 // sum of all degrees: 2*(edge weights) + 2*(self loops)
}

func newSupraGraph(n int) *supraGraph {
	g := &supraGraph{
		adj:  make([]map[int]float64, n),
		self: make([]float64, n),
	}
	for i := range g.adj {
		g.adj[i] = make(map[int]float64)
	}
	return g
}

func (g *supraGraph) size() int { return len(g.adj) }

func (g *supraGraph) addWeight(u, v int, w float64) {
	if u == v {
		g.self[u] += w
		g.m2 += 2 * w
		return
	}
	g.adj[u][v] += w
	g.adj[v][u] += w
	g.m2 += 2 * w
}

func (g *supraGraph) degree(i int) float64 {
	d := 2 * g.self[i]
	for _, w := range g.adj[i] {
		d += w
	}
	return d
}

// localMove runs modularity-improving single-vertex moves until a full
// sweep makes no move. Returns the community of each vertex and whether any
// vertex moved at all.
func localMove(g *supraGraph, rng *rand.Rand) ([]int, bool) {
	n := g.size()
	comm := make([]int, n)
	tot := make([]float64, n)
	deg := make([]float64, n)
	for i := 0; i < n; i++ {
		comm[i] = i
		deg[i] = g.degree(i)
		tot[i] = deg[i]
	}
	if g.m2 == 0 {
		return comm, false
	}

	order := rng.Perm(n)
	movedEver := false
	for {
		moved := false
		for _, i := range order {
			cur := comm[i]
			tot[cur] -= deg[i]

			// Weight from i to each adjacent community
			wTo := map[int]float64{cur: 0}
			for j, w := range g.adj[i] {
				wTo[comm[j]] += w
			}

			best, bestGain := cur, wTo[cur]-deg[i]*tot[cur]/g.m2
			for c, w := range wTo {
				gain := w - deg[i]*tot[c]/g.m2
				if gain > bestGain || (gain == bestGain && c < best) {
					best, bestGain = c, gain
				}
			}

			comm[i] = best
			tot[best] += deg[i]
			if best != cur {
				moved = true
				movedEver = true
			}
		}
		if !moved {
			break
		}
	}
	return comm, movedEver
}

// aggregate collapses each community into a single vertex
func (g *supraGraph) aggregate(comm []int) *supraGraph {
	count := 0
	for _, c := range comm {
		if c+1 > count {
			count = c + 1
		}
	}
	next := newSupraGraph(count)
	for i := range g.adj {
		next.self[comm[i]] += g.self[i]
		next.m2 += 2 * g.self[i]
		for j, w := range g.adj[i] {
			if j < i {
				continue
			}
			if comm[i] == comm[j] {
				next.self[comm[i]] += w
			} else {
				next.adj[comm[i]][comm[j]] += w
				next.adj[comm[j]][comm[i]] += w
			}
			next.m2 += 2 * w
		}
	}
	return next
}

// modularity evaluates the objective for an assignment over this graph
func (g *supraGraph) modularity(assignment []int) float64 {
	if g.m2 == 0 {
		return 0
	}
	in := make(map[int]float64)
	tot := make(map[int]float64)
	for i := range g.adj {
		c := assignment[i]
		tot[c] += g.degree(i)
		in[c] += 2 * g.self[i]
		for j, w := range g.adj[i] {
			if assignment[j] == c {
				in[c] += w // both directions visited once each
			}
		}
	}
	q := 0.0
	for c := range tot {
		q += in[c]/g.m2 - (tot[c]/g.m2)*(tot[c]/g.m2)
	}
	return q
}

// compactLabels renumbers community labels to 0..k-1 preserving order of
// first appearance
func compactLabels(comm []int) []int {
	next := 0
	seen := make(map[int]int)
	out := make([]int, len(comm))
	for i, c := range comm {
		id, ok := seen[c]
		if !ok {
			id = next
			seen[c] = id
			next++
		}
		out[i] = id
	}
	return out
}
