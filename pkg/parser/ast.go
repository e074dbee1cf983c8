package parser

import "github.com/Sumatoshi-tech/mquery-parser/pkg/token"

// Ast is an immutable record produced when a production completes. Closed
// ast nodes are never mutated after creation; children are not duplicated
// here and are instead looked up through the owning NodeIdMap, which is the
// single source of truth for graph edges (see DESIGN.md).
type Ast struct {
	Id         NodeId
	Kind       NodeKind
	IsLeaf     bool
	TokenRange token.Range

	// Literal carries the leaf's decoded textual value. It is only
	// meaningful when IsLeaf is true; non-leaf nodes leave it empty and
	// derive their structural data from the map's children list.
	Literal string
}

// NewLeafAst constructs a closed leaf ast-node.
func NewLeafAst(id NodeId, kind NodeKind, tokenRange token.Range, literal string) *Ast {
	return &Ast{Id: id, Kind: kind, IsLeaf: true, TokenRange: tokenRange, Literal: literal}
}

// NewAst constructs a closed non-leaf ast-node. Its children are whatever
// the NodeIdMap's childrenById[id] records at the moment it was closed.
func NewAst(id NodeId, kind NodeKind, tokenRange token.Range) *Ast {
	return &Ast{Id: id, Kind: kind, IsLeaf: false, TokenRange: tokenRange}
}

// Context is a still-open, mutable parse-tree entry: a production the
// driver has started but not yet (or ever) completed.
type Context struct {
	Id              NodeId
	Kind            NodeKind
	TokenIndexStart int
	StartToken      *token.Token

	// attributeCounter is the number of children ever opened beneath this
	// context; it only ever increases (I4).
	attributeCounter int

	// AttributeIndex is this context's 0-based slot beneath its own
	// parent, fixed at start time. Nil for a context started as root. A
	// child promoted to root by DeleteContext keeps the index it had
	// beneath its deleted parent.
	AttributeIndex *int

	// ast is set exactly once, by EndContext. While nil the context is
	// open; once set it is closed (though a closed Context is always
	// immediately removed from contextById, so externally "closed" reads
	// as "no longer present in the context realm").
	ast *Ast
}

// newContext constructs a fresh, open context.
func newContext(id NodeId, kind NodeKind, tokenIndexStart int, startToken *token.Token) *Context {
	return &Context{Id: id, Kind: kind, TokenIndexStart: tokenIndexStart, StartToken: startToken}
}

// IsOpen reports whether this context has not yet been closed.
func (c *Context) IsOpen() bool {
	return c.ast == nil
}

// AttributeCounter returns the number of children ever opened beneath this
// context.
func (c *Context) AttributeCounter() int {
	return c.attributeCounter
}

// XorKind discriminates which realm an XorNode names.
type XorKind int

// The two realms a node can live in.
const (
	XorKindContext XorKind = iota
	XorKindAst
)

// XorNode is a tagged handle naming either a still-open context or an
// already-closed ast node by id. Consumers walk the graph uniformly through
// this handle and match on realm where the distinction matters.
type XorNode struct {
	kind XorKind
	ctx  *Context
	ast  *Ast
}

// XorFromContext wraps an open context as an XorNode.
func XorFromContext(c *Context) XorNode {
	return XorNode{kind: XorKindContext, ctx: c}
}

// XorFromAst wraps a closed ast node as an XorNode.
func XorFromAst(a *Ast) XorNode {
	return XorNode{kind: XorKindAst, ast: a}
}

// Kind reports which realm this handle names.
func (x XorNode) Kind() XorKind {
	return x.kind
}

// Id returns the id of the underlying node regardless of realm.
func (x XorNode) Id() NodeId {
	if x.kind == XorKindContext {
		return x.ctx.Id
	}

	return x.ast.Id
}

// Context returns the underlying context and true if this handle names one.
func (x XorNode) Context() (*Context, bool) {
	if x.kind != XorKindContext {
		return nil, false
	}

	return x.ctx, true
}

// Ast returns the underlying ast node and true if this handle names one.
func (x XorNode) Ast() (*Ast, bool) {
	if x.kind != XorKindAst {
		return nil, false
	}

	return x.ast, true
}
