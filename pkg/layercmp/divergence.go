package layercmp

import (
	"math"

	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// degreeHistogram bins the per-actor degrees of one layer into bins
// equal-width buckets over [0, maxDegree]. Every actor of the network
// contributes; actors absent from the layer count as degree 0.
func degreeHistogram(n *store.Network, layer string, mode store.EdgeMode, bins int, maxDegree int) []float64 {
	hist := make([]float64, bins)
	width := float64(maxDegree+1) / float64(bins)
	for _, a := range n.Actors() {
		d := n.IncidentEdges(a, layer, mode)
		idx := int(float64(d) / width)
		if idx >= bins {
			idx = bins - 1
		}
		hist[idx]++
	}
	return hist
}

// toDistribution normalizes a histogram with Laplace smoothing so that
// divergences stay finite when a bin is empty on one side.
func toDistribution(hist []float64) []float64 {
	total := 0.0
	for _, h := range hist {
		total += h
	}
	dist := make([]float64, len(hist))
	denom := total + float64(len(hist))
	for i, h := range hist {
		dist[i] = (h + 1) / denom
	}
	return dist
}

func klDivergence(p, q []float64) float64 {
	sum := 0.0
	for i := range p {
		sum += p[i] * math.Log(p[i]/q[i])
	}
	return sum
}

func jensenShannon(p, q []float64) float64 {
	m := make([]float64, len(p))
	for i := range p {
		m[i] = (p[i] + q[i]) / 2
	}
	return (klDivergence(p, m) + klDivergence(q, m)) / 2
}

// compareDistributions computes one divergence-family value for a layer
// pair. The bin count follows Sturges' rule over the actor count; both
// histograms share the same bin edges.
func compareDistributions(n *store.Network, l1, l2 string, m Method, mode store.EdgeMode) float64 {
	actorCount := len(n.Actors())
	if actorCount == 0 {
		return 0
	}
	bins := int(math.Floor(math.Log2(float64(actorCount)))) + 1
	if bins < 1 {
		bins = 1
	}

	maxDegree := 0
	for _, a := range n.Actors() {
		for _, l := range []string{l1, l2} {
			if d := n.IncidentEdges(a, l, mode); d > maxDegree {
				maxDegree = d
			}
		}
	}

	p := toDistribution(degreeHistogram(n, l1, mode, bins, maxDegree))
	q := toDistribution(degreeHistogram(n, l2, mode, bins, maxDegree))

	switch m {
	case KLDivergence:
		return klDivergence(p, q)
	case JeffreyDivergence:
		return klDivergence(p, q) + klDivergence(q, p)
	case JensenShannon:
		return jensenShannon(p, q)
	default:
		return 0
	}
}
