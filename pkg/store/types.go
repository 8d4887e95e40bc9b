package store

import "fmt"

// AttrType represents the declared type of an attribute value
type AttrType uint8

const (
	TypeNumeric AttrType = iota
	TypeText
	TypeCategorical
)

// String returns the string representation of an attribute type
func (t AttrType) String() string {
	switch t {
	case TypeNumeric:
		return "numeric"
	case TypeText:
		return "text"
	case TypeCategorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// ParseAttrType converts a string to an AttrType
func ParseAttrType(s string) (AttrType, error) {
	switch s {
	case "numeric", "NUMERIC", "double", "int":
		return TypeNumeric, nil
	case "text", "TEXT", "string", "STRING":
		return TypeText, nil
	case "categorical", "CATEGORICAL":
		return TypeCategorical, nil
	default:
		return 0, fmt.Errorf("unknown attribute type %q", s)
	}
}

// AttrScope identifies which entity kind an attribute is attached to
type AttrScope uint8

const (
	ScopeActor AttrScope = iota
	ScopeVertex
	ScopeEdge
)

// String returns the string representation of an attribute scope
func (s AttrScope) String() string {
	switch s {
	case ScopeActor:
		return "actor"
	case ScopeVertex:
		return "vertex"
	case ScopeEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// AttrDef declares an attribute: its name, value type, scope, and for
// vertex/edge scopes the owning layer.
type AttrDef struct {
	Name  string
	Type  AttrType
	Scope AttrScope
	Layer string // empty for actor scope
}

// Value represents a typed attribute value
type Value struct {
	Type AttrType
	num  float64
	text string
}

// Helper functions to create typed values

func NumericValue(f float64) Value {
	return Value{Type: TypeNumeric, num: f}
}

func TextValue(s string) Value {
	return Value{Type: TypeText, text: s}
}

func CategoricalValue(s string) Value {
	return Value{Type: TypeCategorical, text: s}
}

// Decode methods

func (v Value) AsNumeric() (float64, error) {
	if v.Type != TypeNumeric {
		return 0, fmt.Errorf("value is not numeric")
	}
	return v.num, nil
}

func (v Value) AsText() (string, error) {
	if v.Type != TypeText && v.Type != TypeCategorical {
		return "", fmt.Errorf("value is not text")
	}
	return v.text, nil
}

// String renders the value for tabular output
func (v Value) String() string {
	if v.Type == TypeNumeric {
		return fmt.Sprintf("%g", v.num)
	}
	return v.text
}

// Layer is a named relation type with fixed directionality
type Layer struct {
	Name     string
	Directed bool
}

// Vertex is the presence of an actor within a layer
type Vertex struct {
	Actor string
	Layer string
}

// Edge connects two vertices of the same layer. For undirected layers the
// endpoints are canonicalized so From <= To lexicographically.
type Edge struct {
	From     string
	To       string
	Layer    string
	Directed bool
}

// Key returns the canonical endpoint pair used for edge identity within a layer.
func (e Edge) Key() [2]string {
	if !e.Directed && e.To < e.From {
		return [2]string{e.To, e.From}
	}
	return [2]string{e.From, e.To}
}

// EdgeMode controls which incident edges are considered on directed layers
type EdgeMode uint8

const (
	ModeAll EdgeMode = iota // incoming and outgoing
	ModeOut                 // outgoing only
	ModeIn                  // incoming only
)

// Filter restricts enumeration to the given layer and actor sets.
// A nil slice means "no restriction".
type Filter struct {
	Layers []string
	Actors []string
}

func (f Filter) layerSet() map[string]bool {
	if f.Layers == nil {
		return nil
	}
	set := make(map[string]bool, len(f.Layers))
	for _, l := range f.Layers {
		set[l] = true
	}
	return set
}

func (f Filter) actorSet() map[string]bool {
	if f.Actors == nil {
		return nil
	}
	set := make(map[string]bool, len(f.Actors))
	for _, a := range f.Actors {
		set[a] = true
	}
	return set
}

// Statistics tracks store counts
type Statistics struct {
	ActorCount  uint64
	LayerCount  uint64
	VertexCount uint64
	EdgeCount   uint64
}
