package parser

// NodeKind names a grammar production. The concrete M grammar is an
// external collaborator's concern (spec.md section 1); this closed set
// covers the productions the core's own invariants and seed scenarios
// reference directly, plus the handful of structural productions needed to
// exercise the type-name renderer's descriptors end to end.
type NodeKind string

// Closed set of grammar production kinds known to the core.
const (
	KindListExpression           NodeKind = "ListExpression"
	KindCsv                      NodeKind = "Csv"
	KindConstant                 NodeKind = "Constant"
	KindRecordLiteral            NodeKind = "RecordLiteral"
	KindLiteralNumber            NodeKind = "LiteralNumber"
	KindLiteralText              NodeKind = "LiteralText"
	KindIdentifierExpression     NodeKind = "IdentifierExpression"
	KindInvokeExpression         NodeKind = "InvokeExpression"
	KindFunctionExpression       NodeKind = "FunctionExpression"
	KindLetExpression            NodeKind = "LetExpression"
	KindIfExpression             NodeKind = "IfExpression"
	KindErrorHandlingExpression  NodeKind = "ErrorHandlingExpression"
	KindTypePrimary              NodeKind = "TypePrimary"
	KindParenthesizedExpression  NodeKind = "ParenthesizedExpression"
)

// leafKinds is the set of kinds that can only ever close as leaf ast-nodes.
var leafKinds = map[NodeKind]bool{
	KindConstant:             true,
	KindLiteralNumber:        true,
	KindLiteralText:          true,
	KindIdentifierExpression: true,
}

// IsLeaf reports whether kind names a leaf-only production.
func (k NodeKind) IsLeaf() bool {
	return leafKinds[k]
}
