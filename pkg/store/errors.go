package store

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrActorNotFound    = errors.New("actor not found")
	ErrLayerNotFound    = errors.New("layer not found")
	ErrVertexNotFound   = errors.New("vertex not found")
	ErrEdgeNotFound     = errors.New("edge not found")
	ErrDuplicateActor   = errors.New("actor already exists")
	ErrDuplicateLayer   = errors.New("layer already exists")
	ErrDuplicateVertex  = errors.New("vertex already exists")
	ErrDuplicateEdge    = errors.New("edge already exists")
	ErrSelfEdge         = errors.New("self edges not allowed")
	ErrLayerMismatch    = errors.New("endpoints not in edge layer")
	ErrAttrNotDeclared  = errors.New("attribute not declared")
	ErrAttrRedeclared   = errors.New("attribute already declared")
	ErrAttrTypeMismatch = errors.New("attribute type mismatch")
	ErrEmptyName        = errors.New("empty name")
)

// StoreError provides structured error information for store operations.
type StoreError struct {
	Op     string // Operation that failed (e.g., "AddVertex", "SetEdgeAttr")
	Entity string // Entity kind (e.g., "actor", "vertex", "attribute")
	Name   string // Entity name: actor name, attribute name, or "from->to"
	Layer  string // Owning layer (if applicable)
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Layer != "" {
		if e.Name != "" {
			return fmt.Sprintf("%s %s %q (layer %s): %v", e.Op, e.Entity, e.Name, e.Layer, e.Cause)
		}
		return fmt.Sprintf("%s %s (layer %s): %v", e.Op, e.Entity, e.Layer, e.Cause)
	}
	if e.Name != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.Name, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *StoreError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building StoreErrors.
type ErrorBuilder struct {
	err StoreError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: StoreError{Op: op}}
}

// Actor sets the entity to "actor" with the given name.
func (b *ErrorBuilder) Actor(name string) *ErrorBuilder {
	b.err.Entity = "actor"
	b.err.Name = name
	return b
}

// Layer sets the entity to "layer" with the given name.
func (b *ErrorBuilder) Layer(name string) *ErrorBuilder {
	b.err.Entity = "layer"
	b.err.Name = name
	return b
}

// Vertex sets the entity to "vertex" for the given actor and layer.
func (b *ErrorBuilder) Vertex(actor, layer string) *ErrorBuilder {
	b.err.Entity = "vertex"
	b.err.Name = actor
	b.err.Layer = layer
	return b
}

// Edge sets the entity to "edge" for the given endpoints and layer.
func (b *ErrorBuilder) Edge(from, to, layer string) *ErrorBuilder {
	b.err.Entity = "edge"
	b.err.Name = from + "->" + to
	b.err.Layer = layer
	return b
}

// Attribute sets the entity to "attribute" with the given name.
func (b *ErrorBuilder) Attribute(name string) *ErrorBuilder {
	b.err.Entity = "attribute"
	b.err.Name = name
	return b
}

// InLayer sets the owning layer without changing the entity.
func (b *ErrorBuilder) InLayer(layer string) *ErrorBuilder {
	b.err.Layer = layer
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// Convenience functions for common error patterns

// ActorNotFoundError creates an actor not found error.
func ActorNotFoundError(op, name string) error {
	return NewError(op).Actor(name).Cause(ErrActorNotFound).Err()
}

// LayerNotFoundError creates a layer not found error.
func LayerNotFoundError(op, name string) error {
	return NewError(op).Layer(name).Cause(ErrLayerNotFound).Err()
}

// VertexNotFoundError creates a vertex not found error.
func VertexNotFoundError(op, actor, layer string) error {
	return NewError(op).Vertex(actor, layer).Cause(ErrVertexNotFound).Err()
}

// IsNotFound returns true if the error is any not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrActorNotFound) || errors.Is(err, ErrLayerNotFound) ||
		errors.Is(err, ErrVertexNotFound) || errors.Is(err, ErrEdgeNotFound)
}

// IsDuplicate returns true if the error reports a duplicate entity.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateActor) || errors.Is(err, ErrDuplicateLayer) ||
		errors.Is(err, ErrDuplicateVertex) || errors.Is(err, ErrDuplicateEdge)
}
