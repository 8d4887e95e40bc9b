package generate

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-multinet/pkg/logging"
	"github.com/dd0wney/cluso-multinet/pkg/metrics"
	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// ActionKind identifies the action a layer drew at a step
type ActionKind string

const (
	ActionInternal ActionKind = "internal"
	ActionExternal ActionKind = "external"
	ActionNone     ActionKind = "none"
)

// Action is one accepted draw of the simulation
type Action struct {
	Step  int
	Layer string
	Kind  ActionKind
}

// Result summarizes a growth run. Actions is the full draw sequence, which
// is identical across runs with the same configuration and seed.
type Result struct {
	RunID   string
	Steps   int
	Actions []Action
}

// Options carries the ambient collaborators of a run
type Options struct {
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Grow runs the configured growth simulation against the network, creating
// the configured actor pool and layers first if they are missing. All
// randomness comes from a single generator seeded with cfg.Seed, and every
// enumeration the simulator draws from is sorted, so a fixed seed yields an
// identical action sequence and final network.
func Grow(n *store.Network, cfg Config, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	pool := make([]string, cfg.NumActors)
	for i := range pool {
		pool[i] = fmt.Sprintf("a%d", i)
		if !n.HasActor(pool[i]) {
			if err := n.AddActor(pool[i]); err != nil {
				return nil, err
			}
		}
	}
	for _, lc := range cfg.Layers {
		if !n.HasLayer(lc.Name) {
			if err := n.AddLayer(lc.Name, lc.Directed); err != nil {
				return nil, err
			}
		}
	}

	result := &Result{RunID: uuid.NewString(), Steps: cfg.Steps}
	rng := rand.New(rand.NewSource(cfg.Seed))
	start := time.Now()

	for step := 1; step <= cfg.Steps; step++ {
		for _, lc := range cfg.Layers {
			kind := drawAction(rng, lc)
			switch kind {
			case ActionInternal:
				internalStep(n, rng, lc, pool)
			case ActionExternal:
				externalStep(n, rng, lc)
			}
			result.Actions = append(result.Actions, Action{Step: step, Layer: lc.Name, Kind: kind})
			if opts.Metrics != nil {
				opts.Metrics.RecordGrowthAction(lc.Name, string(kind))
			}
		}
		if opts.Metrics != nil {
			opts.Metrics.RecordGrowthStep(result.RunID)
		}
	}

	logger.Info("growth run finished",
		logging.String("run_id", result.RunID),
		logging.Int("steps", cfg.Steps),
		logging.Count(len(result.Actions)),
		logging.Latency(time.Since(start)))
	return result, nil
}

func drawAction(rng *rand.Rand, lc LayerConfig) ActionKind {
	draw := rng.Float64()
	switch {
	case draw < lc.ProbInternal:
		return ActionInternal
	case draw < lc.ProbInternal+lc.ProbExternal:
		return ActionExternal
	default:
		return ActionNone
	}
}

// internalStep applies the layer's internal model: pa brings one absent
// actor in and attaches it preferentially (or densifies once the layer
// holds the whole pool), er links a uniform random actor pair.
func internalStep(n *store.Network, rng *rand.Rand, lc LayerConfig, pool []string) {
	switch lc.Model {
	case ModelPreferentialAttachment:
		present := layerActors(n, lc.Name)
		absent := missingFrom(present, pool)
		if len(absent) > 0 {
			newcomer := absent[rng.Intn(len(absent))]
			if n.AddVertex(newcomer, lc.Name) != nil {
				return
			}
			edges := lc.EdgesPerStep
			if edges < 1 {
				edges = 1
			}
			for i := 0; i < edges && i < len(present); i++ {
				target := preferentialPick(n, rng, lc.Name, present, newcomer)
				if target == "" {
					break
				}
				// Ignore duplicates from repeated picks
				_ = n.AddEdge(newcomer, target, lc.Name)
			}
			return
		}
		// Whole pool present: densify with one preferential edge
		if len(present) < 2 {
			return
		}
		from := present[rng.Intn(len(present))]
		to := preferentialPick(n, rng, lc.Name, present, from)
		if to != "" {
			_ = n.AddEdge(from, to, lc.Name)
		}

	case ModelErdosRenyi:
		if len(pool) < 2 {
			return
		}
		i := rng.Intn(len(pool))
		j := rng.Intn(len(pool) - 1)
		if j >= i {
			j++
		}
		from, to := pool[i], pool[j]
		ensureVertex(n, from, lc.Name)
		ensureVertex(n, to, lc.Name)
		_ = n.AddEdge(from, to, lc.Name)
	}
}

// externalStep imports one edge from a uniformly chosen dependency layer.
// Endpoints absent from the target layer are added first. When every
// dependency edge already exists on the target the step has no effect.
func externalStep(n *store.Network, rng *rand.Rand, lc LayerConfig) {
	dep := lc.DependsOn[rng.Intn(len(lc.DependsOn))]

	var candidates []store.Edge
	for _, e := range n.Edges(store.Filter{Layers: []string{dep}}) {
		if !n.HasEdge(e.From, e.To, lc.Name) {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return
	}
	e := candidates[rng.Intn(len(candidates))]
	ensureVertex(n, e.From, lc.Name)
	ensureVertex(n, e.To, lc.Name)
	_ = n.AddEdge(e.From, e.To, lc.Name)
}

// preferentialPick draws an actor from candidates with probability
// proportional to degree+1 on the layer, excluding the given actor and
// actors already adjacent to it. Returns "" when no candidate remains.
func preferentialPick(n *store.Network, rng *rand.Rand, layer string, candidates []string, exclude string) string {
	adjacent := make(map[string]bool)
	for _, nb := range n.Neighbors(exclude, layer, store.ModeAll) {
		adjacent[nb] = true
	}

	weights := make([]int, 0, len(candidates))
	eligible := make([]string, 0, len(candidates))
	total := 0
	for _, a := range candidates {
		if a == exclude || adjacent[a] {
			continue
		}
		w := n.IncidentEdges(a, layer, store.ModeAll) + 1
		eligible = append(eligible, a)
		weights = append(weights, w)
		total += w
	}
	if total == 0 {
		return ""
	}
	draw := rng.Intn(total)
	for i, w := range weights {
		if draw < w {
			return eligible[i]
		}
		draw -= w
	}
	return eligible[len(eligible)-1]
}

func layerActors(n *store.Network, layer string) []string {
	vertices := n.Vertices(store.Filter{Layers: []string{layer}})
	actors := make([]string, 0, len(vertices))
	for _, v := range vertices {
		actors = append(actors, v.Actor)
	}
	return actors
}

func missingFrom(present []string, pool []string) []string {
	set := make(map[string]bool, len(present))
	for _, a := range present {
		set[a] = true
	}
	var absent []string
	for _, a := range pool {
		if !set[a] {
			absent = append(absent, a)
		}
	}
	return absent
}

func ensureVertex(n *store.Network, actor, layer string) {
	if !n.HasVertex(actor, layer) {
		_ = n.AddVertex(actor, layer)
	}
}
