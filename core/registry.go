package core

import (
	benchrrors "github.com/vvtb/bench/infrastructure/errors"
)

// Registry owns the name → Node mapping for one simulation. It is the
// arena: nodes never hold a reference back into the bus's registry, only
// the engine/bus does, which breaks the bus↔node cyclic ownership the
// original substrate had (spec §9).
type Registry struct {
	order []string
	byName map[string]Node
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Node)}
}

// Register appends a node. Names must be unique; registration is rejected
// mid-tick by convention (callers only register before Engine.Run starts).
func (r *Registry) Register(n Node) error {
	name := n.Name()
	if _, exists := r.byName[name]; exists {
		return benchrrors.DuplicateNode(name)
	}
	r.byName[name] = n
	r.order = append(r.order, name)
	return nil
}

// Lookup returns a node by name, or nil if not registered.
func (r *Registry) Lookup(name string) Node {
	return r.byName[name]
}

// Names returns registered node names in registration order. The returned
// slice is a fresh copy: iterating it while a receiver re-enters the bus is
// always safe because registration never mutates it mid-tick.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len reports the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.order)
}
