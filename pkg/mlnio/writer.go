package mlnio

import (
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// Write emits a network in the description format so it can be read back by
// Read. Vertices are listed explicitly only when isolated or carrying
// attribute values; all other presences are implied by the edge records.
// Declared attributes with no value set are written as empty fields, which
// Read leaves unset instead of fabricating a zero value.
func Write(w io.Writer, n *store.Network) error {
	layers := n.Layers()

	fmt.Fprintln(w, sectionLayers)
	for _, l := range layers {
		dir := "UNDIRECTED"
		if l.Directed {
			dir = "DIRECTED"
		}
		fmt.Fprintf(w, "%s,%s\n", l.Name, dir)
	}

	actorDefs := n.AttributeDefs(store.ScopeActor, "")
	if len(actorDefs) > 0 {
		fmt.Fprintln(w, sectionActorAttrs)
		for _, d := range actorDefs {
			fmt.Fprintf(w, "%s,%s\n", d.Name, d.Type)
		}
	}
	writeScopedDefs(w, n, layers, store.ScopeVertex, sectionVertexAttrs)
	writeScopedDefs(w, n, layers, store.ScopeEdge, sectionEdgeAttrs)

	fmt.Fprintln(w, sectionActors)
	for _, a := range n.Actors() {
		fmt.Fprint(w, a)
		for _, d := range actorDefs {
			v, ok := n.ActorAttr(a, d.Name)
			writeAttrField(w, v, ok)
		}
		fmt.Fprintln(w)
	}

	if vertices := explicitVertices(n, layers); len(vertices) > 0 {
		fmt.Fprintln(w, sectionVertices)
		for _, v := range vertices {
			fmt.Fprint(w, v.Actor+","+v.Layer)
			for _, d := range n.AttributeDefs(store.ScopeVertex, v.Layer) {
				val, ok := n.VertexAttr(v.Actor, v.Layer, d.Name)
				writeAttrField(w, val, ok)
			}
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w, sectionEdges)
	for _, e := range n.Edges(store.Filter{}) {
		fmt.Fprintf(w, "%s,%s,%s", e.From, e.To, e.Layer)
		for _, d := range n.AttributeDefs(store.ScopeEdge, e.Layer) {
			val, ok := n.EdgeAttr(e.From, e.To, e.Layer, d.Name)
			writeAttrField(w, val, ok)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// WriteFile writes a network description file
func WriteFile(path string, n *store.Network) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create network file: %w", err)
	}
	defer f.Close()
	return Write(f, n)
}

// writeAttrField emits one attribute field; unset values become empty fields
func writeAttrField(w io.Writer, v store.Value, ok bool) {
	if ok {
		fmt.Fprintf(w, ",%s", v)
		return
	}
	fmt.Fprint(w, ",")
}

func writeScopedDefs(w io.Writer, n *store.Network, layers []store.Layer, scope store.AttrScope, header string) {
	var defs []store.AttrDef
	for _, l := range layers {
		defs = append(defs, n.AttributeDefs(scope, l.Name)...)
	}
	if len(defs) == 0 {
		return
	}
	fmt.Fprintln(w, header)
	for _, d := range defs {
		fmt.Fprintf(w, "%s,%s,%s\n", d.Name, d.Layer, d.Type)
	}
}

// explicitVertices lists the vertices that must appear in #VERTICES:
// isolated ones and those with attribute values set
func explicitVertices(n *store.Network, layers []store.Layer) []store.Vertex {
	var out []store.Vertex
	for _, v := range n.Vertices(store.Filter{}) {
		isolated := len(n.Neighbors(v.Actor, v.Layer, store.ModeAll)) == 0
		hasAttr := false
		for _, d := range n.AttributeDefs(store.ScopeVertex, v.Layer) {
			if _, ok := n.VertexAttr(v.Actor, v.Layer, d.Name); ok {
				hasAttr = true
				break
			}
		}
		if isolated || hasAttr {
			out = append(out, v)
		}
	}
	return out
}
