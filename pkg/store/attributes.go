package store

import "sort"

// DeclareAttribute registers an attribute definition at one of the three
// scopes. Vertex- and edge-scoped attributes belong to a layer, which must
// already exist. Redeclaring a name within the same scope fails, even with
// the same type.
func (n *Network) DeclareAttribute(def AttrDef) error {
	if def.Name == "" {
		return NewError("DeclareAttribute").Attribute(def.Name).Cause(ErrEmptyName).Err()
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	switch def.Scope {
	case ScopeActor:
		if _, ok := n.actorAttrDefs[def.Name]; ok {
			return NewError("DeclareAttribute").Attribute(def.Name).Cause(ErrAttrRedeclared).Err()
		}
		n.actorAttrDefs[def.Name] = def
		n.actorAttrs[def.Name] = make(map[string]Value)
	case ScopeVertex:
		ld, ok := n.layers[def.Layer]
		if !ok {
			return LayerNotFoundError("DeclareAttribute", def.Layer)
		}
		if _, ok := ld.vertexAttrDefs[def.Name]; ok {
			return NewError("DeclareAttribute").Attribute(def.Name).InLayer(def.Layer).Cause(ErrAttrRedeclared).Err()
		}
		ld.vertexAttrDefs[def.Name] = def
		ld.vertexAttrs[def.Name] = make(map[string]Value)
	case ScopeEdge:
		ld, ok := n.layers[def.Layer]
		if !ok {
			return LayerNotFoundError("DeclareAttribute", def.Layer)
		}
		if _, ok := ld.edgeAttrDefs[def.Name]; ok {
			return NewError("DeclareAttribute").Attribute(def.Name).InLayer(def.Layer).Cause(ErrAttrRedeclared).Err()
		}
		ld.edgeAttrDefs[def.Name] = def
		ld.edgeAttrs[def.Name] = make(map[[2]string]Value)
	}
	return nil
}

// AttributeDefs lists the declared attributes for a scope, ordered by name.
// The layer argument is ignored for actor scope.
func (n *Network) AttributeDefs(scope AttrScope, layer string) []AttrDef {
	n.mu.RLock()
	defer n.mu.RUnlock()

	var defs []AttrDef
	switch scope {
	case ScopeActor:
		for _, d := range n.actorAttrDefs {
			defs = append(defs, d)
		}
	case ScopeVertex:
		if ld, ok := n.layers[layer]; ok {
			for _, d := range ld.vertexAttrDefs {
				defs = append(defs, d)
			}
		}
	case ScopeEdge:
		if ld, ok := n.layers[layer]; ok {
			for _, d := range ld.edgeAttrDefs {
				defs = append(defs, d)
			}
		}
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// SetActorAttr writes an actor-scoped attribute value. The attribute must be
// declared and the value must match the declared type.
func (n *Network) SetActorAttr(actor, attr string, v Value) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.actors[actor] {
		return ActorNotFoundError("SetActorAttr", actor)
	}
	def, ok := n.actorAttrDefs[attr]
	if !ok {
		return NewError("SetActorAttr").Attribute(attr).Cause(ErrAttrNotDeclared).Err()
	}
	if def.Type != v.Type {
		return NewError("SetActorAttr").Attribute(attr).Cause(ErrAttrTypeMismatch).Err()
	}
	n.actorAttrs[attr][actor] = v
	return nil
}

// ActorAttr reads an actor-scoped attribute value
func (n *Network) ActorAttr(actor, attr string) (Value, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	values, ok := n.actorAttrs[attr]
	if !ok {
		return Value{}, false
	}
	v, ok := values[actor]
	return v, ok
}

// SetVertexAttr writes a layer-scoped vertex attribute value
func (n *Network) SetVertexAttr(actor, layer, attr string, v Value) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	ld, ok := n.layers[layer]
	if !ok {
		return LayerNotFoundError("SetVertexAttr", layer)
	}
	if !ld.vertices[actor] {
		return VertexNotFoundError("SetVertexAttr", actor, layer)
	}
	def, ok := ld.vertexAttrDefs[attr]
	if !ok {
		return NewError("SetVertexAttr").Attribute(attr).InLayer(layer).Cause(ErrAttrNotDeclared).Err()
	}
	if def.Type != v.Type {
		return NewError("SetVertexAttr").Attribute(attr).InLayer(layer).Cause(ErrAttrTypeMismatch).Err()
	}
	ld.vertexAttrs[attr][actor] = v
	return nil
}

// VertexAttr reads a layer-scoped vertex attribute value
func (n *Network) VertexAttr(actor, layer, attr string) (Value, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ld, ok := n.layers[layer]
	if !ok {
		return Value{}, false
	}
	values, ok := ld.vertexAttrs[attr]
	if !ok {
		return Value{}, false
	}
	v, ok := values[actor]
	return v, ok
}

// SetEdgeAttr writes a layer-scoped edge attribute value. The edge must
// exist; for undirected layers endpoint order is irrelevant.
func (n *Network) SetEdgeAttr(from, to, layer, attr string, v Value) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	ld, ok := n.layers[layer]
	if !ok {
		return LayerNotFoundError("SetEdgeAttr", layer)
	}
	if !ld.hasEdge(from, to) {
		return NewError("SetEdgeAttr").Edge(from, to, layer).Cause(ErrEdgeNotFound).Err()
	}
	def, ok := ld.edgeAttrDefs[attr]
	if !ok {
		return NewError("SetEdgeAttr").Attribute(attr).InLayer(layer).Cause(ErrAttrNotDeclared).Err()
	}
	if def.Type != v.Type {
		return NewError("SetEdgeAttr").Attribute(attr).InLayer(layer).Cause(ErrAttrTypeMismatch).Err()
	}
	ld.edgeAttrs[attr][ld.edgeKey(from, to)] = v
	return nil
}

// EdgeAttr reads a layer-scoped edge attribute value
func (n *Network) EdgeAttr(from, to, layer, attr string) (Value, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ld, ok := n.layers[layer]
	if !ok {
		return Value{}, false
	}
	values, ok := ld.edgeAttrs[attr]
	if !ok {
		return Value{}, false
	}
	v, ok := values[ld.edgeKey(from, to)]
	return v, ok
}
