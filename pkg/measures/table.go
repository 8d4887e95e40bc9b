package measures

import (
	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// ActorRow is one row of the per-actor measure table
type ActorRow struct {
	Actor              string
	Degree             int
	Neighborhood       int
	ExclusiveNeighbors int
	Relevance          float64
	ExclusiveRelevance float64
	DegreeDeviation    float64
}

// Table computes the per-actor measure table for a layer selection.
// Nil actors means every actor in the network; nil layers means every layer.
// DegreeDeviation is always taken over the selected layers.
func Table(n *store.Network, actors, layers []string, mode store.EdgeMode) []ActorRow {
	if actors == nil {
		actors = n.Actors()
	}
	rows := make([]ActorRow, 0, len(actors))
	for _, a := range actors {
		rows = append(rows, ActorRow{
			Actor:              a,
			Degree:             Degree(n, a, layers, mode),
			Neighborhood:       Neighborhood(n, a, layers, mode),
			ExclusiveNeighbors: ExclusiveNeighborhood(n, a, layers, mode),
			Relevance:          Relevance(n, a, layers, mode),
			ExclusiveRelevance: ExclusiveRelevance(n, a, layers, mode),
			DegreeDeviation:    DegreeDeviation(n, a, layers, mode),
		})
	}
	return rows
}
