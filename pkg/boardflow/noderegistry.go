package boardflow

import (
	"github.com/boardflow/boardflow/pkg/boardflow/registry"
)

// registered pairs a node module with its validated definition.
// The definition pointer is handed out by Lookup and shared by reference
// across every board and run; nothing mutates it after registration.
type registered struct {
	node Node
	def  *Definition
}

// NodeRegistry holds the process-wide set of loaded node modules.
//
// It is populated once at startup and read-only afterwards. Many
// concurrent runs share the same registry without locking beyond the
// registry's own synchronization, because definitions are immutable.
type NodeRegistry struct {
	entries *registry.Registry[string, registered]
}

// NewNodeRegistry creates an empty node registry.
func NewNodeRegistry() *NodeRegistry {
	return &NodeRegistry{
		entries: registry.New[string, registered](),
	}
}

// Register loads a node module: calls Define once, validates the
// definition, and stores it under its name.
//
// Returns a *RegistrationError when the definition is malformed (bad pin,
// malformed default, empty permission name) or when the name is already
// taken. A rejected module is not added in any form.
func (r *NodeRegistry) Register(node Node) (*Definition, error) {
	def := node.Define()
	if err := def.validate(); err != nil {
		return nil, &RegistrationError{Node: def.Name, Err: err}
	}
	if !r.entries.Add(def.Name, registered{node: node, def: &def}) {
		return nil, &RegistrationError{Node: def.Name, Err: ErrDuplicateName}
	}
	return &def, nil
}

// MustRegister registers a node and panics on error.
// Intended for startup wiring where a malformed built-in node is a
// programming error.
func (r *NodeRegistry) MustRegister(node Node) *Definition {
	def, err := r.Register(node)
	if err != nil {
		panic(err)
	}
	return def
}

// Lookup returns the shared definition for a registered name.
// Returns ErrNotFound if no node with that name was registered.
func (r *NodeRegistry) Lookup(name string) (*Definition, error) {
	entry, ok := r.entries.Get(name)
	if !ok {
		return nil, ErrNotFound
	}
	return entry.def, nil
}

// Node returns the node module for a registered name.
func (r *NodeRegistry) Node(name string) (Node, error) {
	entry, ok := r.entries.Get(name)
	if !ok {
		return nil, ErrNotFound
	}
	return entry.node, nil
}

// Names returns the registered node names. The order is not guaranteed.
func (r *NodeRegistry) Names() []string {
	return r.entries.Keys()
}

// Len returns the number of registered nodes.
func (r *NodeRegistry) Len() int {
	return r.entries.Len()
}
