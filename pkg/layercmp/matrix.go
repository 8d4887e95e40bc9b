package layercmp

import (
	"time"

	"github.com/dd0wney/cluso-multinet/pkg/metrics"
	"github.com/dd0wney/cluso-multinet/pkg/parallel"
	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// Options configures a comparison run
type Options struct {
	Target  Target         // overlap family target set (default actors)
	Mode    store.EdgeMode // edge direction mode for degree-based methods
	Workers int            // matrix fill parallelism (0 = GOMAXPROCS)
	Metrics *metrics.Registry
}

// DefaultOptions returns sensible defaults
func DefaultOptions() Options {
	return Options{Target: TargetActors, Mode: store.ModeAll}
}

// LayerMatrix is a layer-by-layer comparison matrix. Values[i][j] compares
// Layers[i] (first argument) with Layers[j] (second argument).
type LayerMatrix struct {
	Method Method
	Layers []string
	Values [][]float64
}

// Compare computes one comparison value for a layer pair
func Compare(n *store.Network, l1, l2 string, method Method, opts Options) (float64, error) {
	if _, err := Properties(method); err != nil {
		return 0, err
	}
	if !n.HasLayer(l1) {
		return 0, store.LayerNotFoundError("Compare", l1)
	}
	if !n.HasLayer(l2) {
		return 0, store.LayerNotFoundError("Compare", l2)
	}

	switch method {
	case Jaccard, Coverage, SimpleMatching, RussellRao, Kulczynski2, Hamann:
		return compareOverlap(n, l1, l2, method, opts.Target), nil
	case KLDivergence, JeffreyDivergence, JensenShannon:
		return compareDistributions(n, l1, l2, method, opts.Mode), nil
	default:
		return compareCorrelation(n, l1, l2, method, opts.Mode), nil
	}
}

// Matrix computes the full layer-comparison matrix for one method.
// Symmetric methods only compute the upper triangle and mirror it; pairs are
// filled in parallel since all comparisons are independent reads.
func Matrix(n *store.Network, method Method, opts Options) (*LayerMatrix, error) {
	info, err := Properties(method)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	layers := n.LayerNames()
	m := &LayerMatrix{Method: method, Layers: layers}
	m.Values = make([][]float64, len(layers))
	for i := range m.Values {
		m.Values[i] = make([]float64, len(layers))
	}

	type pair struct{ i, j int }
	var pairs []pair
	for i := range layers {
		for j := range layers {
			if info.Symmetric && j < i {
				continue
			}
			pairs = append(pairs, pair{i, j})
		}
	}

	parallel.ForEach(opts.Workers, len(pairs), func(k int) {
		p := pairs[k]
		v, _ := Compare(n, layers[p.i], layers[p.j], method, opts)
		m.Values[p.i][p.j] = v
		if info.Symmetric {
			m.Values[p.j][p.i] = v
		}
	})

	if opts.Metrics != nil {
		opts.Metrics.RecordAnalysis("layer_comparison", "ok", time.Since(start))
	}
	return m, nil
}
