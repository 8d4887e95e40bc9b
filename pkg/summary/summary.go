// Package summary produces the per-layer descriptive table of a multilayer
// network: order, size, directionality, component count, density, clustering
// coefficient, average path length, and diameter, with one closing row for
// the flattened projection.
package summary

import (
	"time"

	"github.com/dd0wney/cluso-multinet/pkg/metrics"
	"github.com/dd0wney/cluso-multinet/pkg/parallel"
	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// FlattenedName labels the projection row of the table
const FlattenedName = "_flat_"

// LayerRow is one row of the summary table. Components, clustering, average
// path length, and diameter are computed on the undirected view of the
// layer; density honors directionality.
type LayerRow struct {
	Layer         string
	Directed      bool
	Order         int // number of vertices
	Size          int // number of edges
	Components    int
	Density       float64
	Clustering    float64 // mean local clustering coefficient
	AvgPathLength float64 // mean shortest-path length over connected pairs
	Diameter      int     // longest shortest path; 0 when no pair connects
}

// Options configures table computation
type Options struct {
	Workers int
	Metrics *metrics.Registry
}

// Table holds one row per layer plus the flattened projection row
type Table struct {
	Rows      []LayerRow
	Flattened LayerRow
}

// Summarize computes the layer summary table. Rows are independent reads of
// the store and are filled in parallel.
func Summarize(n *store.Network, opts Options) *Table {
	start := time.Now()
	layers := n.Layers()
	t := &Table{Rows: make([]LayerRow, len(layers))}

	parallel.ForEach(opts.Workers, len(layers)+1, func(i int) {
		if i < len(layers) {
			t.Rows[i] = layerRow(n, layers[i])
			return
		}
		t.Flattened = flattenedRow(n)
	})

	if opts.Metrics != nil {
		opts.Metrics.RecordAnalysis("layer_summary", "ok", time.Since(start))
	}
	return t
}

func layerRow(n *store.Network, l store.Layer) LayerRow {
	adj := make(map[string]map[string]bool)
	for _, v := range n.Vertices(store.Filter{Layers: []string{l.Name}}) {
		set := make(map[string]bool)
		for _, nb := range n.Neighbors(v.Actor, l.Name, store.ModeAll) {
			set[nb] = true
		}
		adj[v.Actor] = set
	}
	edges := len(n.Edges(store.Filter{Layers: []string{l.Name}}))
	row := describe(adj, edges, l.Directed)
	row.Layer = l.Name
	return row
}

func flattenedRow(n *store.Network) LayerRow {
	flat := n.Flatten()
	row := describe(flat.NeighborSets(), len(flat.Edges), flat.Directed)
	row.Layer = FlattenedName
	return row
}

// describe computes all row statistics from an undirected adjacency view
func describe(adj map[string]map[string]bool, edges int, directed bool) LayerRow {
	row := LayerRow{Directed: directed, Order: len(adj), Size: edges}

	if row.Order > 1 {
		pairs := float64(row.Order) * float64(row.Order-1)
		if directed {
			row.Density = float64(edges) / pairs
		} else {
			row.Density = 2 * float64(edges) / pairs
		}
	}

	row.Components = countComponents(adj)
	row.Clustering = meanClustering(adj)
	row.AvgPathLength, row.Diameter = pathStatistics(adj)
	return row
}

func countComponents(adj map[string]map[string]bool) int {
	visited := make(map[string]bool, len(adj))
	components := 0
	for start := range adj {
		if visited[start] {
			continue
		}
		components++
		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for nb := range adj[cur] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	return components
}

// meanClustering averages the local clustering coefficient over all
// vertices; vertices with fewer than two neighbors contribute 0
func meanClustering(adj map[string]map[string]bool) float64 {
	if len(adj) == 0 {
		return 0
	}
	sum := 0.0
	for _, neighbors := range adj {
		k := len(neighbors)
		if k < 2 {
			continue
		}
		links := 0
		list := make([]string, 0, k)
		for nb := range neighbors {
			list = append(list, nb)
		}
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				if adj[list[i]][list[j]] {
					links++
				}
			}
		}
		sum += 2 * float64(links) / (float64(k) * float64(k-1))
	}
	return sum / float64(len(adj))
}

// pathStatistics runs BFS from every vertex and aggregates mean shortest
// path length and diameter over connected pairs
func pathStatistics(adj map[string]map[string]bool) (float64, int) {
	totalLength, pairCount, diameter := 0, 0, 0
	for start := range adj {
		dist := map[string]int{start: 0}
		queue := []string{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for nb := range adj[cur] {
				if _, seen := dist[nb]; !seen {
					dist[nb] = dist[cur] + 1
					queue = append(queue, nb)
				}
			}
		}
		for other, d := range dist {
			if other == start {
				continue
			}
			totalLength += d
			pairCount++
			if d > diameter {
				diameter = d
			}
		}
	}
	if pairCount == 0 {
		return 0, 0
	}
	return float64(totalLength) / float64(pairCount), diameter
}
