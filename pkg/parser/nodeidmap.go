package parser

// NodeIdMap is the relational core: four mappings plus a leaf-id list. It is
// a passive data substrate — it is mutated only by the Context Lifecycle
// operations (lifecycle.go); outside code must never write to it
// directly.
type NodeIdMap struct {
	astById      map[NodeId]*Ast
	contextById  map[NodeId]*Context
	parentById   map[NodeId]NodeId
	childrenById map[NodeId][]NodeId

	// LeafIds is the order-of-closure list of ids for all closed leaf
	// nodes (I6). Exported for direct iteration by downstream consumers,
	// per the external interface contract.
	LeafIds []NodeId
}

// NewNodeIdMap returns an empty map.
func NewNodeIdMap() *NodeIdMap {
	return &NodeIdMap{
		astById:      make(map[NodeId]*Ast),
		contextById:  make(map[NodeId]*Context),
		parentById:   make(map[NodeId]NodeId),
		childrenById: make(map[NodeId][]NodeId),
		LeafIds:      nil,
	}
}

// ExpectAst returns the closed ast node for id, or an InvariantError if none
// is registered.
func (m *NodeIdMap) ExpectAst(id NodeId) (*Ast, error) {
	a, ok := m.astById[id]
	if !ok {
		return nil, newMissingIdError("expectAst", id)
	}

	return a, nil
}

// MaybeAst is the soft variant of ExpectAst.
func (m *NodeIdMap) MaybeAst(id NodeId) (*Ast, bool) {
	a, ok := m.astById[id]

	return a, ok
}

// ExpectContext returns the open context for id, or an InvariantError if
// none is registered.
func (m *NodeIdMap) ExpectContext(id NodeId) (*Context, error) {
	c, ok := m.contextById[id]
	if !ok {
		return nil, newMissingIdError("expectContext", id)
	}

	return c, nil
}

// MaybeContext is the soft variant of ExpectContext.
func (m *NodeIdMap) MaybeContext(id NodeId) (*Context, bool) {
	c, ok := m.contextById[id]

	return c, ok
}

// ExpectXor resolves id to whichever realm currently holds it, or fails with
// an InvariantError if it is in neither (per I1, that means it was never
// allocated or has since been deleted).
func (m *NodeIdMap) ExpectXor(id NodeId) (XorNode, error) {
	if c, ok := m.contextById[id]; ok {
		return XorFromContext(c), nil
	}

	if a, ok := m.astById[id]; ok {
		return XorFromAst(a), nil
	}

	return XorNode{}, newMissingIdError("expectXor", id)
}

// MaybeXor is the soft variant of ExpectXor.
func (m *NodeIdMap) MaybeXor(id NodeId) (XorNode, bool) {
	x, err := m.ExpectXor(id)

	return x, err == nil
}

// ExpectChildren returns the ordered list of child ids beneath id. A node
// with no children beneath it yet returns an empty, non-nil slice rather
// than failing: having zero children is not itself an absence.
func (m *NodeIdMap) ExpectChildren(id NodeId) ([]NodeId, error) {
	if _, ok := m.contextById[id]; !ok {
		if _, ok := m.astById[id]; !ok {
			return nil, newMissingIdError("expectChildren", id)
		}
	}

	children := m.childrenById[id]
	if children == nil {
		return []NodeId{}, nil
	}

	return children, nil
}

// MaybeChildren is the soft variant of ExpectChildren.
func (m *NodeIdMap) MaybeChildren(id NodeId) ([]NodeId, bool) {
	children, err := m.ExpectChildren(id)

	return children, err == nil
}

// ExpectParentId returns the parent id of id, or an InvariantError if id has
// no parent mapping (either it is the root, or id itself is unknown).
func (m *NodeIdMap) ExpectParentId(id NodeId) (NodeId, error) {
	p, ok := m.parentById[id]
	if !ok {
		return NoneId, newMissingIdError("expectParentId", id)
	}

	return p, nil
}

// MaybeParentId is the soft variant of ExpectParentId.
func (m *NodeIdMap) MaybeParentId(id NodeId) (NodeId, bool) {
	p, ok := m.parentById[id]

	return p, ok
}

// DeepCopy returns an independent map whose mutations do not affect the
// receiver. The four mappings and the leaf-id list are duplicated; the
// immutable *Ast records are shared between the two maps, since they are
// never mutated after creation and sharing them is safe.
func (m *NodeIdMap) DeepCopy() *NodeIdMap {
	out := NewNodeIdMap()

	for id, a := range m.astById {
		out.astById[id] = a // ast payloads are immutable; share the pointer.
	}

	for id, c := range m.contextById {
		clone := *c
		if c.AttributeIndex != nil {
			idx := *c.AttributeIndex
			clone.AttributeIndex = &idx
		}

		out.contextById[id] = &clone
	}

	for id, p := range m.parentById {
		out.parentById[id] = p
	}

	for id, children := range m.childrenById {
		out.childrenById[id] = append([]NodeId(nil), children...)
	}

	out.LeafIds = append([]NodeId(nil), m.LeafIds...)

	return out
}
