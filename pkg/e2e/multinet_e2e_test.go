package e2e

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-multinet/pkg/community"
	"github.com/dd0wney/cluso-multinet/pkg/generate"
	"github.com/dd0wney/cluso-multinet/pkg/layercmp"
	"github.com/dd0wney/cluso-multinet/pkg/measures"
	"github.com/dd0wney/cluso-multinet/pkg/mlnio"
	"github.com/dd0wney/cluso-multinet/pkg/paths"
	"github.com/dd0wney/cluso-multinet/pkg/store"
	"github.com/dd0wney/cluso-multinet/pkg/summary"
)

const socialNetwork = `
#LAYERS
work,UNDIRECTED
lunch,UNDIRECTED
coauthor,UNDIRECTED

#ACTOR ATTRIBUTES
group,categorical

#ACTORS
Luca,research
Matteo,research
Davide,research
Anna,admin
Marta,admin

#EDGES
Luca,Matteo,work
Luca,Davide,work
Matteo,Davide,work
Anna,Marta,work
Davide,Anna,work
Luca,Matteo,lunch
Matteo,Davide,lunch
Anna,Marta,lunch
Luca,Matteo,coauthor
Luca,Davide,coauthor
`

// TestAnalysisWorkflow drives the full pipeline a user would run against a
// small office network: load, measure, compare layers, find communities and
// distances, summarize, and persist the result.
func TestAnalysisWorkflow(t *testing.T) {
	t.Log("=== E2E Test: Complete Analysis Workflow ===")

	// Step 1: Load the network description
	t.Log("Step 1: Loading network...")
	n, err := mlnio.Read(strings.NewReader(socialNetwork), mlnio.Options{})
	require.NoError(t, err)
	stats := n.GetStatistics()
	require.EqualValues(t, 5, stats.ActorCount)
	require.EqualValues(t, 3, stats.LayerCount)
	require.EqualValues(t, 10, stats.EdgeCount)
	t.Logf("✓ Loaded %d actors over %d layers", stats.ActorCount, stats.LayerCount)

	// Step 2: Actor measures
	t.Log("Step 2: Computing actor measures...")
	rows := measures.Table(n, nil, nil, store.ModeAll)
	require.Len(t, rows, 5)
	byActor := make(map[string]measures.ActorRow)
	for _, r := range rows {
		byActor[r.Actor] = r
	}
	assert.Equal(t, 5, byActor["Luca"].Degree)
	assert.Equal(t, 2, byActor["Luca"].Neighborhood)
	assert.Equal(t, 1.0, byActor["Luca"].Relevance)
	// Marta only ever meets Anna
	assert.Equal(t, 1, byActor["Marta"].Neighborhood)
	t.Logf("✓ Computed measures for %d actors", len(rows))

	// Step 3: Layer comparison
	t.Log("Step 3: Comparing layers...")
	m, err := layercmp.Matrix(n, layercmp.Jaccard, layercmp.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []string{"coauthor", "lunch", "work"}, m.Layers)
	for i := range m.Layers {
		assert.Equal(t, 1.0, m.Values[i][i], "diagonal must be 1")
	}
	// Everyone works; only Luca, Matteo and Davide coauthor
	workIdx, coIdx := 2, 0
	assert.InDelta(t, 0.6, m.Values[workIdx][coIdx], 1e-12)
	t.Log("✓ Jaccard matrix computed")

	// Step 4: Pareto distances
	t.Log("Step 4: Computing multilayer distances...")
	res, err := paths.ParetoDistances(n, "Luca", "Marta", paths.Options{})
	require.NoError(t, err)
	require.NotEmpty(t, res.Front, "Luca must reach Marta")
	// Every route to Marta crosses the work bridge Davide-Anna
	for _, vec := range res.Front {
		total := 0
		for _, c := range vec {
			total += c
		}
		assert.GreaterOrEqual(t, total, 3, "Marta is three hops away")
	}
	t.Logf("✓ Pareto front holds %d vectors", len(res.Front))

	// Step 5: Community detection
	t.Log("Step 5: Detecting communities...")
	p, err := community.Louvain(n, community.DefaultLouvainOptions())
	require.NoError(t, err)
	assert.Greater(t, p.Modularity, 0.0)
	luca := p.Assignments[store.Vertex{Actor: "Luca", Layer: "work"}]
	matteo := p.Assignments[store.Vertex{Actor: "Matteo", Layer: "work"}]
	marta := p.Assignments[store.Vertex{Actor: "Marta", Layer: "work"}]
	assert.Equal(t, luca, matteo, "research colleagues belong together")
	assert.NotEqual(t, luca, marta, "admin staff form their own community")

	overlap, err := community.CliquePercolation(n, community.PercolationOptions{K: 3, M: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, overlap.Cliques, "the work triangle must surface")
	t.Logf("✓ %d communities, %d cliques", len(p.Communities), len(overlap.Cliques))

	// Step 6: Layer summary
	t.Log("Step 6: Summarizing layers...")
	table := summary.Summarize(n, summary.Options{})
	require.Len(t, table.Rows, 3)
	require.Equal(t, summary.FlattenedName, table.Flattened.Layer)
	assert.EqualValues(t, 5, table.Flattened.Order)
	assert.Equal(t, 1, table.Flattened.Components, "flattened network is connected")
	t.Log("✓ Summary table computed")

	// Step 7: Persist and reload
	t.Log("Step 7: Writing and re-reading...")
	path := filepath.Join(t.TempDir(), "office.mpx")
	require.NoError(t, mlnio.WriteFile(path, n))
	reloaded, err := mlnio.ReadFile(path, mlnio.Options{})
	require.NoError(t, err)
	assert.Equal(t, n.GetStatistics(), reloaded.GetStatistics())
	t.Log("✓ Round trip preserved the network")
}

// TestGrowthToAnalysisWorkflow grows a synthetic network and feeds it through
// the same analysis entry points.
func TestGrowthToAnalysisWorkflow(t *testing.T) {
	t.Log("=== E2E Test: Growth to Analysis ===")

	cfg := generate.Config{
		NumActors: 30,
		Steps:     120,
		Seed:      7,
		Layers: []generate.LayerConfig{
			{Name: "core", Model: generate.ModelPreferentialAttachment, EdgesPerStep: 2, ProbInternal: 0.9},
			{Name: "echo", Model: generate.ModelErdosRenyi, ProbInternal: 0.3, ProbExternal: 0.5, DependsOn: []string{"core"}},
		},
	}

	n := store.NewNetwork()
	result, err := generate.Grow(n, cfg, generate.Options{})
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)
	require.Len(t, result.Actions, cfg.Steps*len(cfg.Layers))

	stats := n.GetStatistics()
	assert.EqualValues(t, 30, stats.ActorCount)
	assert.NotZero(t, stats.EdgeCount)
	t.Logf("✓ Grew %d edges in %d steps", stats.EdgeCount, result.Steps)

	v, err := layercmp.Compare(n, "core", "echo", layercmp.Jaccard, layercmp.DefaultOptions())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, 0.0)
	assert.LessOrEqual(t, v, 1.0)

	table := summary.Summarize(n, summary.Options{})
	require.Len(t, table.Rows, 2)
	for _, row := range table.Rows {
		assert.GreaterOrEqual(t, row.Density, 0.0)
		assert.LessOrEqual(t, row.Density, 1.0)
	}
	t.Log("✓ Grown network analyzable end to end")
}
