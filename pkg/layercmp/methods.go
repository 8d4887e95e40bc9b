// Package layercmp compares the layers of a multilayer network pairwise:
// set-overlap similarity over actor/edge/triangle sets, divergence between
// degree distributions, and correlation between degree sequences.
package layercmp

import (
	"errors"
	"math"
)

// Method selects the comparison formula
type Method int

const (
	// Overlap family, computed over a Target set
	Jaccard Method = iota
	Coverage
	SimpleMatching
	RussellRao
	Kulczynski2
	Hamann
	// Degree-distribution family
	KLDivergence
	JeffreyDivergence
	JensenShannon
	// Degree-correlation family
	Pearson
	Spearman
)

// String returns the method name
func (m Method) String() string {
	switch m {
	case Jaccard:
		return "jaccard"
	case Coverage:
		return "coverage"
	case SimpleMatching:
		return "simple_matching"
	case RussellRao:
		return "russell_rao"
	case Kulczynski2:
		return "kulczynski2"
	case Hamann:
		return "hamann"
	case KLDivergence:
		return "kl_divergence"
	case JeffreyDivergence:
		return "jeffrey_divergence"
	case JensenShannon:
		return "jensen_shannon"
	case Pearson:
		return "pearson"
	case Spearman:
		return "spearman"
	default:
		return "unknown"
	}
}

// Target selects which per-layer set the overlap family compares
type Target int

const (
	TargetActors Target = iota
	TargetEdges
	TargetTriangles
)

// String returns the target name
func (t Target) String() string {
	switch t {
	case TargetActors:
		return "actors"
	case TargetEdges:
		return "edges"
	case TargetTriangles:
		return "triangles"
	default:
		return "unknown"
	}
}

// ErrUnknownMethod is returned for an unrecognized comparison method
var ErrUnknownMethod = errors.New("unknown comparison method")

// MethodInfo declares the value range and symmetry of a method
type MethodInfo struct {
	MinValue  float64
	MaxValue  float64
	Symmetric bool
}

// Properties returns the declared range and symmetry of a method.
// Coverage is the only directional (asymmetric) overlap method; the
// divergence family is symmetric only in its Jeffrey- and Jensen-Shannon
// style reductions. Hamann is the one overlap method whose range is
// [-1,1] rather than [0,1]: it subtracts the mismatch fraction, so two
// fully disjoint sets score -1.
func Properties(m Method) (MethodInfo, error) {
	switch m {
	case Jaccard, Coverage, SimpleMatching, RussellRao, Kulczynski2:
		return MethodInfo{MinValue: 0, MaxValue: 1, Symmetric: m != Coverage}, nil
	case Hamann:
		return MethodInfo{MinValue: -1, MaxValue: 1, Symmetric: true}, nil
	case KLDivergence:
		return MethodInfo{MinValue: 0, MaxValue: math.Inf(1), Symmetric: false}, nil
	case JeffreyDivergence, JensenShannon:
		return MethodInfo{MinValue: 0, MaxValue: math.Inf(1), Symmetric: true}, nil
	case Pearson, Spearman:
		return MethodInfo{MinValue: -1, MaxValue: 1, Symmetric: true}, nil
	default:
		return MethodInfo{}, ErrUnknownMethod
	}
}
