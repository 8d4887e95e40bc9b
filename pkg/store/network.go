// Package store implements the multilayer network model: a set of actors
// connected through several named layers, where an actor may be present in
// any subset of the layers. All analytical packages consume it read-only.
//
// The store is single-writer: mutations take the write lock, queries take the
// read lock, so analyses running over a stable snapshot may be parallelized
// freely.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/dd0wney/cluso-multinet/pkg/logging"
	"github.com/dd0wney/cluso-multinet/pkg/metrics"
)

// Network is the in-memory multilayer graph store
type Network struct {
	mu sync.RWMutex

	actors map[string]bool
	layers map[string]*layerData

	// Attribute registry: declared defs keyed by scope
	actorAttrDefs map[string]AttrDef
	actorAttrs    map[string]map[string]Value // attr name -> actor -> value

	logger  logging.Logger
	metrics *metrics.Registry

	stats Statistics
}

// layerData holds the per-layer vertex set, adjacency, and attribute values
type layerData struct {
	directed bool

	vertices map[string]bool
	out      map[string]map[string]bool // actor -> successors (undirected: all neighbors)
	in       map[string]map[string]bool // actor -> predecessors (undirected: mirror of out)

	edgeCount int

	vertexAttrDefs map[string]AttrDef
	vertexAttrs    map[string]map[string]Value // attr name -> actor -> value
	edgeAttrDefs   map[string]AttrDef
	edgeAttrs      map[string]map[[2]string]Value // attr name -> canonical endpoints -> value
}

// Option configures a Network at construction time
type Option func(*Network)

// WithLogger attaches a structured logger; mutating bulk operations log through it.
func WithLogger(l logging.Logger) Option {
	return func(n *Network) { n.logger = l }
}

// WithMetrics attaches a metrics registry; store gauges are kept current on mutation.
func WithMetrics(r *metrics.Registry) Option {
	return func(n *Network) { n.metrics = r }
}

// NewNetwork creates an empty multilayer network
func NewNetwork(opts ...Option) *Network {
	n := &Network{
		actors:        make(map[string]bool),
		layers:        make(map[string]*layerData),
		actorAttrDefs: make(map[string]AttrDef),
		actorAttrs:    make(map[string]map[string]Value),
		logger:        logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func newLayerData(directed bool) *layerData {
	return &layerData{
		directed:       directed,
		vertices:       make(map[string]bool),
		out:            make(map[string]map[string]bool),
		in:             make(map[string]map[string]bool),
		vertexAttrDefs: make(map[string]AttrDef),
		vertexAttrs:    make(map[string]map[string]Value),
		edgeAttrDefs:   make(map[string]AttrDef),
		edgeAttrs:      make(map[string]map[[2]string]Value),
	}
}

// AddActor registers a new global actor identity
func (n *Network) AddActor(name string) (err error) {
	defer n.recordOp("AddActor", time.Now(), &err)
	if name == "" {
		return NewError("AddActor").Actor(name).Cause(ErrEmptyName).Err()
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.actors[name] {
		return NewError("AddActor").Actor(name).Cause(ErrDuplicateActor).Err()
	}
	n.actors[name] = true
	n.stats.ActorCount++
	n.publishTotals()
	return nil
}

// AddLayer registers a new relation layer. Directionality is fixed at creation.
func (n *Network) AddLayer(name string, directed bool) (err error) {
	defer n.recordOp("AddLayer", time.Now(), &err)
	if name == "" {
		return NewError("AddLayer").Layer(name).Cause(ErrEmptyName).Err()
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.layers[name]; ok {
		return NewError("AddLayer").Layer(name).Cause(ErrDuplicateLayer).Err()
	}
	n.layers[name] = newLayerData(directed)
	n.stats.LayerCount++
	n.publishTotals()
	return nil
}

// AddVertex records the presence of an actor in a layer.
// Both the actor and the layer must already exist.
func (n *Network) AddVertex(actor, layer string) (err error) {
	defer n.recordOp("AddVertex", time.Now(), &err)
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.addVertexLocked("AddVertex", actor, layer)
}

func (n *Network) addVertexLocked(op, actor, layer string) error {
	if !n.actors[actor] {
		return ActorNotFoundError(op, actor)
	}
	ld, ok := n.layers[layer]
	if !ok {
		return LayerNotFoundError(op, layer)
	}
	if ld.vertices[actor] {
		return NewError(op).Vertex(actor, layer).Cause(ErrDuplicateVertex).Err()
	}
	ld.vertices[actor] = true
	n.stats.VertexCount++
	n.publishTotals()
	return nil
}

// RemoveVertex deletes an actor's presence in a layer along with all
// incident edges and layer-scoped attribute values.
func (n *Network) RemoveVertex(actor, layer string) (err error) {
	defer n.recordOp("RemoveVertex", time.Now(), &err)
	n.mu.Lock()
	defer n.mu.Unlock()

	ld, ok := n.layers[layer]
	if !ok {
		return LayerNotFoundError("RemoveVertex", layer)
	}
	if !ld.vertices[actor] {
		return VertexNotFoundError("RemoveVertex", actor, layer)
	}

	// Drop incident edges in both directions
	for succ := range ld.out[actor] {
		delete(ld.in[succ], actor)
		ld.removeEdgeAttrs(actor, succ)
		ld.edgeCount--
		n.stats.EdgeCount--
	}
	for pred := range ld.in[actor] {
		if ld.out[pred][actor] {
			delete(ld.out[pred], actor)
			// Undirected mirrors were already counted above
			if ld.directed {
				ld.removeEdgeAttrs(pred, actor)
				ld.edgeCount--
				n.stats.EdgeCount--
			}
		}
	}
	delete(ld.out, actor)
	delete(ld.in, actor)
	delete(ld.vertices, actor)
	for _, values := range ld.vertexAttrs {
		delete(values, actor)
	}
	n.stats.VertexCount--
	n.publishTotals()
	return nil
}

// AddEdge connects two existing vertices of the same layer.
// Multi-edges and self edges are rejected.
func (n *Network) AddEdge(from, to, layer string) (err error) {
	defer n.recordOp("AddEdge", time.Now(), &err)
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.addEdgeLocked("AddEdge", from, to, layer)
}

func (n *Network) addEdgeLocked(op, from, to, layer string) error {
	ld, ok := n.layers[layer]
	if !ok {
		return LayerNotFoundError(op, layer)
	}
	if from == to {
		return NewError(op).Edge(from, to, layer).Cause(ErrSelfEdge).Err()
	}
	if !ld.vertices[from] {
		return VertexNotFoundError(op, from, layer)
	}
	if !ld.vertices[to] {
		return VertexNotFoundError(op, to, layer)
	}
	if ld.hasEdge(from, to) {
		return NewError(op).Edge(from, to, layer).Cause(ErrDuplicateEdge).Err()
	}

	ld.link(from, to)
	if !ld.directed {
		ld.link(to, from)
	}
	ld.edgeCount++
	n.stats.EdgeCount++
	n.publishTotals()
	return nil
}

// RemoveEdge deletes an edge and its attribute values
func (n *Network) RemoveEdge(from, to, layer string) (err error) {
	defer n.recordOp("RemoveEdge", time.Now(), &err)
	n.mu.Lock()
	defer n.mu.Unlock()

	ld, ok := n.layers[layer]
	if !ok {
		return LayerNotFoundError("RemoveEdge", layer)
	}
	if !ld.hasEdge(from, to) {
		return NewError("RemoveEdge").Edge(from, to, layer).Cause(ErrEdgeNotFound).Err()
	}

	delete(ld.out[from], to)
	delete(ld.in[to], from)
	if !ld.directed {
		delete(ld.out[to], from)
		delete(ld.in[from], to)
	}
	ld.removeEdgeAttrs(from, to)
	ld.edgeCount--
	n.stats.EdgeCount--
	n.publishTotals()
	return nil
}

func (ld *layerData) link(from, to string) {
	if ld.out[from] == nil {
		ld.out[from] = make(map[string]bool)
	}
	ld.out[from][to] = true
	if ld.in[to] == nil {
		ld.in[to] = make(map[string]bool)
	}
	ld.in[to][from] = true
}

func (ld *layerData) hasEdge(from, to string) bool {
	if ld.out[from][to] {
		return true
	}
	return !ld.directed && ld.out[to][from]
}

func (ld *layerData) edgeKey(from, to string) [2]string {
	if !ld.directed && to < from {
		return [2]string{to, from}
	}
	return [2]string{from, to}
}

func (ld *layerData) removeEdgeAttrs(from, to string) {
	key := ld.edgeKey(from, to)
	for _, values := range ld.edgeAttrs {
		delete(values, key)
	}
}

// HasActor reports whether the actor exists
func (n *Network) HasActor(name string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.actors[name]
}

// HasLayer reports whether the layer exists
func (n *Network) HasLayer(name string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.layers[name]
	return ok
}

// HasVertex reports whether the actor is present in the layer
func (n *Network) HasVertex(actor, layer string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ld, ok := n.layers[layer]
	return ok && ld.vertices[actor]
}

// HasEdge reports whether an edge connects the two actors on the layer.
// For undirected layers endpoint order is irrelevant.
func (n *Network) HasEdge(from, to, layer string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ld, ok := n.layers[layer]
	return ok && ld.hasEdge(from, to)
}

// LayerDirected reports the directionality of a layer
func (n *Network) LayerDirected(name string) (bool, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ld, ok := n.layers[name]
	if !ok {
		return false, LayerNotFoundError("LayerDirected", name)
	}
	return ld.directed, nil
}

// Actors returns all actor names in lexicographic order
func (n *Network) Actors() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	names := make([]string, 0, len(n.actors))
	for a := range n.actors {
		names = append(names, a)
	}
	sort.Strings(names)
	return names
}

// Layers returns all layers in lexicographic name order
func (n *Network) Layers() []Layer {
	n.mu.RLock()
	defer n.mu.RUnlock()
	layers := make([]Layer, 0, len(n.layers))
	for name, ld := range n.layers {
		layers = append(layers, Layer{Name: name, Directed: ld.directed})
	}
	sort.Slice(layers, func(i, j int) bool { return layers[i].Name < layers[j].Name })
	return layers
}

// LayerNames returns all layer names in lexicographic order
func (n *Network) LayerNames() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	names := make([]string, 0, len(n.layers))
	for name := range n.layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Vertices enumerates vertices matching the filter, ordered by (layer, actor)
func (n *Network) Vertices(f Filter) []Vertex {
	n.mu.RLock()
	defer n.mu.RUnlock()

	layerSet, actorSet := f.layerSet(), f.actorSet()
	var out []Vertex
	for _, layer := range n.layerNamesLocked() {
		if layerSet != nil && !layerSet[layer] {
			continue
		}
		ld := n.layers[layer]
		actors := make([]string, 0, len(ld.vertices))
		for a := range ld.vertices {
			if actorSet != nil && !actorSet[a] {
				continue
			}
			actors = append(actors, a)
		}
		sort.Strings(actors)
		for _, a := range actors {
			out = append(out, Vertex{Actor: a, Layer: layer})
		}
	}
	return out
}

// Edges enumerates edges matching the filter, ordered by (layer, from, to).
// For undirected layers each edge is reported once with canonical endpoints.
// When an actor filter is given, both endpoints must match it.
func (n *Network) Edges(f Filter) []Edge {
	n.mu.RLock()
	defer n.mu.RUnlock()

	layerSet, actorSet := f.layerSet(), f.actorSet()
	var out []Edge
	for _, layer := range n.layerNamesLocked() {
		if layerSet != nil && !layerSet[layer] {
			continue
		}
		ld := n.layers[layer]
		edges := make([]Edge, 0, ld.edgeCount)
		for from, succs := range ld.out {
			for to := range succs {
				if !ld.directed && to < from {
					continue // canonical copy only
				}
				if actorSet != nil && (!actorSet[from] || !actorSet[to]) {
					continue
				}
				edges = append(edges, Edge{From: from, To: to, Layer: layer, Directed: ld.directed})
			}
		}
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].From != edges[j].From {
				return edges[i].From < edges[j].From
			}
			return edges[i].To < edges[j].To
		})
		out = append(out, edges...)
	}
	return out
}

// Neighbors returns the distinct actors adjacent to the given actor on one
// layer, in lexicographic order. An actor absent from the layer has no
// neighbors; that is not an error.
func (n *Network) Neighbors(actor, layer string, mode EdgeMode) []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	ld, ok := n.layers[layer]
	if !ok || !ld.vertices[actor] {
		return nil
	}
	set := make(map[string]bool)
	if mode == ModeAll || mode == ModeOut {
		for succ := range ld.out[actor] {
			set[succ] = true
		}
	}
	if mode == ModeAll || mode == ModeIn {
		for pred := range ld.in[actor] {
			set[pred] = true
		}
	}
	names := make([]string, 0, len(set))
	for a := range set {
		names = append(names, a)
	}
	sort.Strings(names)
	return names
}

// IncidentEdges counts the distinct edges incident to the actor on one layer.
// On directed layers ModeAll counts in- plus out-edges, so a reciprocal pair
// contributes two. An actor absent from the layer has count 0.
func (n *Network) IncidentEdges(actor, layer string, mode EdgeMode) int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	ld, ok := n.layers[layer]
	if !ok || !ld.vertices[actor] {
		return 0
	}
	if !ld.directed {
		return len(ld.out[actor])
	}
	count := 0
	if mode == ModeAll || mode == ModeOut {
		count += len(ld.out[actor])
	}
	if mode == ModeAll || mode == ModeIn {
		count += len(ld.in[actor])
	}
	return count
}

// Align inserts the missing vertices so that every listed actor is present in
// every listed layer. Nil slices mean all actors or all layers. The inserted
// vertices have no incident edges.
func (n *Network) Align(actors, layers []string) (err error) {
	defer n.recordOp("Align", time.Now(), &err)
	n.mu.Lock()
	defer n.mu.Unlock()

	if actors == nil {
		actors = n.actorNamesLocked()
	}
	if layers == nil {
		layers = n.layerNamesLocked()
	}

	// Validate references before mutating anything
	for _, a := range actors {
		if !n.actors[a] {
			return ActorNotFoundError("Align", a)
		}
	}
	for _, l := range layers {
		if _, ok := n.layers[l]; !ok {
			return LayerNotFoundError("Align", l)
		}
	}

	added := 0
	for _, l := range layers {
		ld := n.layers[l]
		for _, a := range actors {
			if !ld.vertices[a] {
				ld.vertices[a] = true
				n.stats.VertexCount++
				added++
			}
		}
	}
	n.publishTotals()
	n.logger.Debug("aligned network",
		logging.Int("actors", len(actors)),
		logging.Int("layers", len(layers)),
		logging.Int("vertices_added", added))
	return nil
}

// GetStatistics returns current store counts
func (n *Network) GetStatistics() Statistics {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.stats
}

func (n *Network) actorNamesLocked() []string {
	names := make([]string, 0, len(n.actors))
	for a := range n.actors {
		names = append(names, a)
	}
	sort.Strings(names)
	return names
}

func (n *Network) layerNamesLocked() []string {
	names := make([]string, 0, len(n.layers))
	for name := range n.layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// recordOp reports a finished mutation to the metrics registry. It runs
// deferred before the lock is taken, so it observes the operation's final
// error without holding the write lock.
func (n *Network) recordOp(op string, start time.Time, err *error) {
	if n.metrics == nil {
		return
	}
	status := "ok"
	if *err != nil {
		status = "error"
	}
	n.metrics.RecordStoreOperation(op, status, time.Since(start))
}

// publishTotals pushes current counts to the metrics registry.
// Callers must hold the write lock.
func (n *Network) publishTotals() {
	if n.metrics == nil {
		return
	}
	n.metrics.UpdateStoreTotals(
		int(n.stats.ActorCount),
		int(n.stats.LayerCount),
		int(n.stats.VertexCount),
		int(n.stats.EdgeCount),
	)
}
