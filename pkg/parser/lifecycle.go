package parser

import (
	"context"
	"fmt"

	"github.com/Sumatoshi-tech/mquery-parser/pkg/token"
)

// StartContext opens a new context under parent (nil for a root context)
// and registers it in state's map. If parent is nil, the new context also
// becomes the session's root handle — the natural Go realization of the
// spec's "the caller is expected to install the new context as root" rule,
// since there is no separate caller step in this API.
func StartContext(
	ctx context.Context,
	state *State,
	kind NodeKind,
	tokenIndexStart int,
	startToken *token.Token,
	parent *Context,
) (*Context, error) {
	spanCtx, span := state.hooks.StartSpan(ctx, "parser.start_context")
	defer span.End()

	newId := state.Allocator.Next()
	created := newContext(newId, kind, tokenIndexStart, startToken)

	if parent != nil {
		if _, ok := state.Map.contextById[parent.Id]; !ok {
			return nil, fmt.Errorf("start context: %w", newMissingIdError("startContext.parent", parent.Id))
		}

		state.Map.parentById[newId] = parent.Id
		state.Map.childrenById[parent.Id] = append(state.Map.childrenById[parent.Id], newId)

		idx := parent.attributeCounter
		created.AttributeIndex = &idx
		parent.attributeCounter++
	} else {
		state.setRoot(newId)
	}

	state.Map.contextById[newId] = created

	state.hooks.IncStarted(spanCtx)
	state.hooks.Debug(spanCtx, "start context", "id", newId, "kind", kind)

	return created, nil
}

// EndContext closes ctx by binding astNode to it. astNode.Id must equal
// ctx.Id: the ast node reuses the context's identity so external references
// remain valid across the realm transition. Returns the parent context if
// one exists and is still open.
func EndContext(parentCtx context.Context, state *State, ctx *Context, astNode *Ast) (*Context, error) {
	spanCtx, span := state.hooks.StartSpan(parentCtx, "parser.end_context")
	defer span.End()

	if !ctx.IsOpen() {
		return nil, fmt.Errorf("end context: %w", newInvariantError(
			"context already closed", map[string]any{"id": ctx.Id}))
	}

	if ctx.Id != astNode.Id {
		return nil, fmt.Errorf("end context: %w", newInvariantError(
			"ast node id must match closing context id",
			map[string]any{"contextId": ctx.Id, "astId": astNode.Id}))
	}

	if _, ok := state.Map.contextById[ctx.Id]; !ok {
		return nil, fmt.Errorf("end context: %w", newMissingIdError("endContext", ctx.Id))
	}

	if astNode.IsLeaf {
		state.Map.LeafIds = append(state.Map.LeafIds, ctx.Id)
	}

	state.Map.astById[ctx.Id] = astNode
	delete(state.Map.contextById, ctx.Id)
	ctx.ast = astNode

	state.hooks.IncClosed(spanCtx)
	state.hooks.Debug(spanCtx, "end context", "id", ctx.Id, "kind", ctx.Kind, "leaf", astNode.IsLeaf)

	parentId, ok := state.Map.parentById[ctx.Id]
	if !ok {
		return nil, nil //nolint:nilnil // absent parent context is a valid, expected outcome (closed node was root).
	}

	parent, ok := state.Map.contextById[parentId]
	if !ok {
		return nil, nil //nolint:nilnil // parent already closed; impossible under correct driver discipline, not an error here.
	}

	return parent, nil
}

// DeleteContext removes the open context identified by nodeId and
// reconciles the graph: a leaf deletion simply unlinks it, an interior
// single-child deletion splices the child into its slot, and a root
// single-child deletion promotes the child to root. Deleting a context with
// two or more children is a driver bug and fails with an InvariantError.
func DeleteContext(parentCtx context.Context, state *State, nodeId NodeId) (*Context, error) {
	spanCtx, span := state.hooks.StartSpan(parentCtx, "parser.delete_context")
	defer span.End()

	if _, ok := state.Map.contextById[nodeId]; !ok {
		return nil, fmt.Errorf("delete context: %w", newMissingIdError("deleteContext", nodeId))
	}

	children := state.Map.childrenById[nodeId]
	if len(children) >= 2 {
		return nil, fmt.Errorf("delete context: %w", newInvariantError(
			"cannot delete a context with two or more children",
			map[string]any{"id": nodeId, "childCount": len(children)}))
	}

	parentId, hasParent := state.Map.parentById[nodeId]

	switch {
	case len(children) == 0 && hasParent:
		state.Map.childrenById[parentId] = removeId(state.Map.childrenById[parentId], nodeId)
	case len(children) == 0 && !hasParent:
		state.clearRoot()
	case len(children) == 1 && hasParent:
		childId := children[0]
		spliceChild(state.Map.childrenById[parentId], nodeId, childId)
		state.Map.parentById[childId] = parentId

		if childCtx, ok := state.Map.contextById[nodeId]; ok {
			inheritAttributeIndex(state.Map, childId, childCtx.AttributeIndex)
		}

		state.hooks.IncCollapsed(spanCtx)
	case len(children) == 1 && !hasParent:
		childId := children[0]
		state.setRoot(childId)
		delete(state.Map.parentById, childId)
		state.hooks.IncPromoted(spanCtx)
	}

	delete(state.Map.contextById, nodeId)
	delete(state.Map.childrenById, nodeId)
	delete(state.Map.parentById, nodeId)
	state.Map.LeafIds = removeId(state.Map.LeafIds, nodeId)

	state.hooks.IncDeleted(spanCtx)
	state.hooks.Debug(spanCtx, "delete context", "id", nodeId, "children", len(children), "hasParent", hasParent)

	if !hasParent {
		return nil, nil //nolint:nilnil // root deletions have no parent to return.
	}

	parent, ok := state.Map.contextById[parentId]
	if !ok {
		return nil, nil //nolint:nilnil // parent already closed; not an error here.
	}

	return parent, nil
}

// removeId returns ids with the first occurrence of target removed,
// preserving the relative order of the rest.
func removeId(ids []NodeId, target NodeId) []NodeId {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return ids
}

// spliceChild replaces oldId with newId in children at oldId's existing
// slot, preserving every sibling's position.
func spliceChild(children []NodeId, oldId, newId NodeId) {
	for i, id := range children {
		if id == oldId {
			children[i] = newId

			return
		}
	}
}

// inheritAttributeIndex gives the child spliced into a deleted context's
// slot (interior collapse) the deleted context's attribute index, unless the child is itself already closed (an ast node carries no
// mutable attribute index, so there is nothing to set).
func inheritAttributeIndex(m *NodeIdMap, childId NodeId, inherited *int) {
	childCtx, ok := m.contextById[childId]
	if !ok {
		return
	}

	if inherited == nil {
		childCtx.AttributeIndex = nil

		return
	}

	idx := *inherited
	childCtx.AttributeIndex = &idx
}
