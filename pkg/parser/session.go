package parser

import "github.com/Sumatoshi-tech/mquery-parser/internal/observability"

// State aggregates the allocator, the node id map, and a root handle. It is
// owned by exactly one logical driver at a time; two States are always
// fully independent.
type State struct {
	Allocator *IdAllocator
	Map       *NodeIdMap

	// rootId points at the topmost node, open or closed, once one exists.
	// Nil means the tree is empty.
	rootId *NodeId

	hooks *observability.Hooks
}

// Empty returns a fresh session: no root, an empty map, a zero id counter,
// and an empty leaf list.
func Empty(opts ...Option) *State {
	return &State{
		Allocator: NewIdAllocator(),
		Map:       NewNodeIdMap(),
		rootId:    nil,
		hooks:     observability.New(opts...),
	}
}

// HasRoot reports whether this session has a root node at all.
func (s *State) HasRoot() bool {
	return s.rootId != nil
}

// RootXor resolves the session's root handle to whichever realm currently
// holds it. It returns false if the session has no root.
func RootXor(state *State) (XorNode, bool) {
	if state.rootId == nil {
		return XorNode{}, false
	}

	x, ok := state.Map.MaybeXor(*state.rootId)

	return x, ok
}

// setRoot installs id as the session's root handle.
func (s *State) setRoot(id NodeId) {
	rootCopy := id
	s.rootId = &rootCopy
}

// clearRoot empties the session's root handle.
func (s *State) clearRoot() {
	s.rootId = nil
}

// DeepCopy returns a fully independent snapshot of the session. Immutable
// ast payloads are aliased between the original and the copy; every mutable
// structure (the four mappings, the leaf list, the allocator counter, the
// root handle) is duplicated. Deep copy is how speculative parsing realizes
// "copy, mutate, discard on failure": instrumentation hooks are shared,
// since they are stateless forwarding shims, not session state.
func (s *State) DeepCopy() *State {
	out := &State{
		Allocator: &IdAllocator{counter: s.Allocator.counter},
		Map:       s.Map.DeepCopy(),
		hooks:     s.hooks,
	}

	if s.rootId != nil {
		out.setRoot(*s.rootId)
	}

	return out
}
