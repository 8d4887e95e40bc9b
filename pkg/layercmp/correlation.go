package layercmp

import (
	"math"
	"sort"

	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// compareCorrelation computes Pearson or Spearman correlation between the
// degree sequences of the actors present in both layers. Pairs with fewer
// than two common actors, or a constant degree sequence on either side,
// return 0 as the degenerate neutral value.
func compareCorrelation(n *store.Network, l1, l2 string, m Method, mode store.EdgeMode) float64 {
	var xs, ys []float64
	for _, a := range n.Actors() {
		if !n.HasVertex(a, l1) || !n.HasVertex(a, l2) {
			continue
		}
		xs = append(xs, float64(n.IncidentEdges(a, l1, mode)))
		ys = append(ys, float64(n.IncidentEdges(a, l2, mode)))
	}
	if len(xs) < 2 {
		return 0
	}

	if m == Spearman {
		xs = ranks(xs)
		ys = ranks(ys)
	}
	return pearson(xs, ys)
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	meanX, meanY := 0.0, 0.0
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	cov, varX, varY := 0.0, 0.0, 0.0
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// ranks converts values to fractional ranks, averaging over ties
func ranks(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return values[idx[i]] < values[idx[j]] })

	ranked := make([]float64, len(values))
	i := 0
	for i < len(idx) {
		j := i
		for j+1 < len(idx) && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// Average rank for the tie group [i, j]
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranked[idx[k]] = avg
		}
		i = j + 1
	}
	return ranked
}
