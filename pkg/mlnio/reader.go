// Package mlnio reads and writes the record-oriented multilayer network
// description format: optional #LAYERS, #ACTOR ATTRIBUTES, #VERTEX
// ATTRIBUTES, #EDGE ATTRIBUTES, #ACTORS, #VERTICES, and #EDGES sections. A
// file with no section headers is treated as a plain edge list of
// "actor1,actor2,layer" lines implying undirected layers.
//
// Loading runs in two phases: a schema pass that registers layers and
// attribute definitions, then a data pass that validates every record
// against the registered schema and fails fast on the first violation.
package mlnio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-multinet/pkg/logging"
	"github.com/dd0wney/cluso-multinet/pkg/metrics"
	"github.com/dd0wney/cluso-multinet/pkg/store"
)

// section names
const (
	sectionType        = "#TYPE"
	sectionLayers      = "#LAYERS"
	sectionActorAttrs  = "#ACTOR ATTRIBUTES"
	sectionVertexAttrs = "#VERTEX ATTRIBUTES"
	sectionEdgeAttrs   = "#EDGE ATTRIBUTES"
	sectionActors      = "#ACTORS"
	sectionVertices    = "#VERTICES"
	sectionEdges       = "#EDGES"
)

// Options configures loading
type Options struct {
	// Align inserts the missing vertices after loading so every actor is
	// present in every layer
	Align   bool
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// record is one data line with its position for error reporting
type record struct {
	line   int
	fields []string
}

// Read parses a network description and returns the populated store
func Read(r io.Reader, opts Options) (*store.Network, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	sections, order, err := scan(r)
	if err != nil {
		return nil, err
	}

	var storeOpts []store.Option
	if opts.Metrics != nil {
		storeOpts = append(storeOpts, store.WithMetrics(opts.Metrics))
	}
	n := store.NewNetwork(storeOpts...)

	// Schema pass
	layersDeclared := len(sections[sectionLayers]) > 0
	if err := loadLayers(n, sections[sectionLayers]); err != nil {
		return nil, err
	}
	if err := loadAttrDefs(n, sections[sectionActorAttrs], store.ScopeActor); err != nil {
		return nil, err
	}
	if err := loadAttrDefs(n, sections[sectionVertexAttrs], store.ScopeVertex); err != nil {
		return nil, err
	}
	if err := loadAttrDefs(n, sections[sectionEdgeAttrs], store.ScopeEdge); err != nil {
		return nil, err
	}

	// Data pass
	if err := loadActors(n, sections[sectionActors]); err != nil {
		return nil, err
	}
	if err := loadVertices(n, sections[sectionVertices], layersDeclared); err != nil {
		return nil, err
	}
	if err := loadEdges(n, sections[sectionEdges], layersDeclared); err != nil {
		return nil, err
	}

	if opts.Align {
		if err := n.Align(nil, nil); err != nil {
			return nil, err
		}
	}

	stats := n.GetStatistics()
	logger.Info("network loaded",
		logging.Int("sections", len(order)),
		logging.Int64("actors", int64(stats.ActorCount)),
		logging.Int64("layers", int64(stats.LayerCount)),
		logging.Int64("vertices", int64(stats.VertexCount)),
		logging.Int64("edges", int64(stats.EdgeCount)))
	return n, nil
}

// ReadFile parses a network description file
func ReadFile(path string, opts Options) (*store.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open network file: %w", err)
	}
	defer f.Close()
	return Read(f, opts)
}

// scan splits the input into sections. Input with no section header at all
// is treated as a bare #EDGES section.
func scan(r io.Reader) (map[string][]record, []string, error) {
	sections := make(map[string][]record)
	var order []string
	current := ""
	sawHeader := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		if strings.HasPrefix(line, "#") {
			name := strings.ToUpper(strings.TrimSpace(line))
			switch name {
			case sectionType, sectionLayers, sectionActorAttrs, sectionVertexAttrs,
				sectionEdgeAttrs, sectionActors, sectionVertices, sectionEdges:
				current = name
				sawHeader = true
				order = append(order, name)
			default:
				return nil, nil, fmt.Errorf("line %d: unknown section %q", lineNo, line)
			}
			continue
		}

		target := current
		if !sawHeader {
			target = sectionEdges // bare edge list
		} else if current == "" {
			return nil, nil, fmt.Errorf("line %d: data before any section header", lineNo)
		} else if current == sectionType {
			continue // network kind marker, informational only
		}
		sections[target] = append(sections[target], record{line: lineNo, fields: splitFields(line)})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read network description: %w", err)
	}
	return sections, order, nil
}

func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func loadLayers(n *store.Network, records []record) error {
	for _, rec := range records {
		if len(rec.fields) != 2 {
			return fmt.Errorf("line %d: layer record needs name and directionality", rec.line)
		}
		directed, err := parseDirectionality(rec.fields[1])
		if err != nil {
			return fmt.Errorf("line %d: %w", rec.line, err)
		}
		if err := n.AddLayer(rec.fields[0], directed); err != nil {
			return fmt.Errorf("line %d: %w", rec.line, err)
		}
	}
	return nil
}

func parseDirectionality(s string) (bool, error) {
	switch strings.ToUpper(s) {
	case "DIRECTED":
		return true, nil
	case "UNDIRECTED":
		return false, nil
	default:
		return false, fmt.Errorf("unknown directionality %q", s)
	}
}

// loadAttrDefs registers attribute declarations. Actor attributes are
// "name,type"; vertex and edge attributes are "name,layer,type".
func loadAttrDefs(n *store.Network, records []record, scope store.AttrScope) error {
	for _, rec := range records {
		def := store.AttrDef{Scope: scope}
		switch {
		case scope == store.ScopeActor && len(rec.fields) == 2:
			def.Name = rec.fields[0]
			t, err := store.ParseAttrType(rec.fields[1])
			if err != nil {
				return fmt.Errorf("line %d: %w", rec.line, err)
			}
			def.Type = t
		case scope != store.ScopeActor && len(rec.fields) == 3:
			def.Name = rec.fields[0]
			def.Layer = rec.fields[1]
			t, err := store.ParseAttrType(rec.fields[2])
			if err != nil {
				return fmt.Errorf("line %d: %w", rec.line, err)
			}
			def.Type = t
		default:
			return fmt.Errorf("line %d: malformed %s attribute record", rec.line, scope)
		}
		if err := n.DeclareAttribute(def); err != nil {
			return fmt.Errorf("line %d: %w", rec.line, err)
		}
	}
	return nil
}

func loadActors(n *store.Network, records []record) error {
	defs := n.AttributeDefs(store.ScopeActor, "")
	for _, rec := range records {
		if len(rec.fields) != 1+len(defs) {
			return fmt.Errorf("line %d: actor record needs name plus %d attribute values", rec.line, len(defs))
		}
		actor := rec.fields[0]
		if err := n.AddActor(actor); err != nil {
			return fmt.Errorf("line %d: %w", rec.line, err)
		}
		for i, def := range defs {
			raw := rec.fields[1+i]
			if raw == "" {
				continue // declared but unset
			}
			v, err := parseValue(def.Type, raw)
			if err != nil {
				return fmt.Errorf("line %d: attribute %q: %w", rec.line, def.Name, err)
			}
			if err := n.SetActorAttr(actor, def.Name, v); err != nil {
				return fmt.Errorf("line %d: %w", rec.line, err)
			}
		}
	}
	return nil
}

func loadVertices(n *store.Network, records []record, layersDeclared bool) error {
	for _, rec := range records {
		if len(rec.fields) < 2 {
			return fmt.Errorf("line %d: vertex record needs actor and layer", rec.line)
		}
		actor, layer := rec.fields[0], rec.fields[1]
		if err := ensureLayer(n, layer, layersDeclared, rec.line); err != nil {
			return err
		}
		if !n.HasActor(actor) {
			if err := n.AddActor(actor); err != nil {
				return fmt.Errorf("line %d: %w", rec.line, err)
			}
		}
		if err := n.AddVertex(actor, layer); err != nil {
			return fmt.Errorf("line %d: %w", rec.line, err)
		}

		defs := n.AttributeDefs(store.ScopeVertex, layer)
		if len(rec.fields) != 2+len(defs) {
			return fmt.Errorf("line %d: vertex record needs %d attribute values for layer %q", rec.line, len(defs), layer)
		}
		for i, def := range defs {
			raw := rec.fields[2+i]
			if raw == "" {
				continue
			}
			v, err := parseValue(def.Type, raw)
			if err != nil {
				return fmt.Errorf("line %d: attribute %q: %w", rec.line, def.Name, err)
			}
			if err := n.SetVertexAttr(actor, layer, def.Name, v); err != nil {
				return fmt.Errorf("line %d: %w", rec.line, err)
			}
		}
	}
	return nil
}

func loadEdges(n *store.Network, records []record, layersDeclared bool) error {
	for _, rec := range records {
		if len(rec.fields) < 3 {
			return fmt.Errorf("line %d: edge record needs two actors and a layer", rec.line)
		}
		from, to, layer := rec.fields[0], rec.fields[1], rec.fields[2]
		if err := ensureLayer(n, layer, layersDeclared, rec.line); err != nil {
			return err
		}
		for _, actor := range []string{from, to} {
			if !n.HasActor(actor) {
				if err := n.AddActor(actor); err != nil {
					return fmt.Errorf("line %d: %w", rec.line, err)
				}
			}
			if !n.HasVertex(actor, layer) {
				if err := n.AddVertex(actor, layer); err != nil {
					return fmt.Errorf("line %d: %w", rec.line, err)
				}
			}
		}
		if err := n.AddEdge(from, to, layer); err != nil {
			return fmt.Errorf("line %d: %w", rec.line, err)
		}

		defs := n.AttributeDefs(store.ScopeEdge, layer)
		if len(rec.fields) != 3+len(defs) {
			return fmt.Errorf("line %d: edge record needs %d attribute values for layer %q", rec.line, len(defs), layer)
		}
		for i, def := range defs {
			raw := rec.fields[3+i]
			if raw == "" {
				continue
			}
			v, err := parseValue(def.Type, raw)
			if err != nil {
				return fmt.Errorf("line %d: attribute %q: %w", rec.line, def.Name, err)
			}
			if err := n.SetEdgeAttr(from, to, layer, def.Name, v); err != nil {
				return fmt.Errorf("line %d: %w", rec.line, err)
			}
		}
	}
	return nil
}

// ensureLayer resolves a layer reference. With a #LAYERS section present,
// referencing an undeclared layer is a schema violation; without one,
// layers materialize as undirected on first reference.
func ensureLayer(n *store.Network, layer string, layersDeclared bool, line int) error {
	if n.HasLayer(layer) {
		return nil
	}
	if layersDeclared {
		return fmt.Errorf("line %d: layer %q not declared in #LAYERS", line, layer)
	}
	return n.AddLayer(layer, false)
}

func parseValue(t store.AttrType, raw string) (store.Value, error) {
	switch t {
	case store.TypeNumeric:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return store.Value{}, fmt.Errorf("invalid numeric value %q", raw)
		}
		return store.NumericValue(f), nil
	case store.TypeCategorical:
		return store.CategoricalValue(raw), nil
	default:
		return store.TextValue(raw), nil
	}
}
