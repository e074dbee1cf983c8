package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/mquery-parser/pkg/parser"
	"github.com/Sumatoshi-tech/mquery-parser/pkg/token"
)

// TestEmptySession is scenario S1.
func TestEmptySession(t *testing.T) {
	t.Parallel()

	state := parser.Empty()

	_, hasRoot := parser.RootXor(state)
	assert.False(t, hasRoot)
	assert.Empty(t, state.Map.LeafIds)
	assert.Equal(t, parser.NoneId, state.Allocator.Counter())
}

func leafToken(idx int) *token.Token {
	return &token.Token{Kind: "Generic", Range: token.Range{Start: idx, End: idx + 1}}
}

// TestListWithTrailingComma is scenario S2.
func TestListWithTrailingComma(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state := parser.Empty()

	listCtx, err := parser.StartContext(ctx, state, parser.KindListExpression, 0, nil, nil)
	require.NoError(t, err)
	require.EqualValues(t, 1, listCtx.Id)

	openBrace, err := parser.StartContext(ctx, state, parser.KindConstant, 0, leafToken(0), listCtx)
	require.NoError(t, err)
	require.EqualValues(t, 2, openBrace.Id)

	_, err = parser.EndContext(ctx, state, openBrace,
		parser.NewLeafAst(openBrace.Id, parser.KindConstant, token.Range{Start: 0, End: 1}, "{"))
	require.NoError(t, err)

	csv, err := parser.StartContext(ctx, state, parser.KindCsv, 1, nil, listCtx)
	require.NoError(t, err)
	require.EqualValues(t, 3, csv.Id)

	number, err := parser.StartContext(ctx, state, parser.KindLiteralNumber, 1, leafToken(1), csv)
	require.NoError(t, err)
	require.EqualValues(t, 4, number.Id)

	_, err = parser.EndContext(ctx, state, number,
		parser.NewLeafAst(number.Id, parser.KindLiteralNumber, token.Range{Start: 1, End: 2}, "1"))
	require.NoError(t, err)

	comma, err := parser.StartContext(ctx, state, parser.KindConstant, 2, leafToken(2), csv)
	require.NoError(t, err)
	require.EqualValues(t, 5, comma.Id)

	_, err = parser.EndContext(ctx, state, comma,
		parser.NewLeafAst(comma.Id, parser.KindConstant, token.Range{Start: 2, End: 3}, ","))
	require.NoError(t, err)

	_, err = parser.EndContext(ctx, state, csv, parser.NewAst(csv.Id, parser.KindCsv, token.Range{Start: 1, End: 3}))
	require.NoError(t, err)

	secondCsv, err := parser.StartContext(ctx, state, parser.KindCsv, 3, nil, listCtx)
	require.NoError(t, err)
	require.EqualValues(t, 6, secondCsv.Id)

	open, closed := openAndClosedIds(state)
	assert.ElementsMatch(t, []parser.NodeId{1, 6}, open)
	assert.ElementsMatch(t, []parser.NodeId{2, 3, 4, 5}, closed)

	children, err := state.Map.ExpectChildren(1)
	require.NoError(t, err)
	assert.Equal(t, []parser.NodeId{2, 3, 6}, children)

	assert.Equal(t, []parser.NodeId{2, 4, 5}, state.Map.LeafIds)
	assert.EqualValues(t, 6, state.Allocator.Counter())
}

func openAndClosedIds(state *parser.State) (open, closed []parser.NodeId) {
	for id := parser.NodeId(1); id <= state.Allocator.Counter(); id++ {
		if _, ok := state.Map.MaybeContext(id); ok {
			open = append(open, id)
		}

		if _, ok := state.Map.MaybeAst(id); ok {
			closed = append(closed, id)
		}
	}

	return open, closed
}

// TestInteriorCollapse is scenario S3.
func TestInteriorCollapse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state := parser.Empty()

	root, err := parser.StartContext(ctx, state, parser.KindLetExpression, 0, nil, nil)
	require.NoError(t, err)

	a, err := parser.StartContext(ctx, state, parser.KindParenthesizedExpression, 0, nil, root)
	require.NoError(t, err)

	b, err := parser.StartContext(ctx, state, parser.KindIdentifierExpression, 0, leafToken(0), a)
	require.NoError(t, err)

	_, err = parser.DeleteContext(ctx, state, a.Id)
	require.NoError(t, err)

	parentId, err := state.Map.ExpectParentId(b.Id)
	require.NoError(t, err)
	assert.Equal(t, root.Id, parentId)

	_, ok := state.Map.MaybeContext(a.Id)
	assert.False(t, ok, "A must vanish from contextById")

	_, ok = state.Map.MaybeParentId(a.Id)
	assert.False(t, ok)

	children, err := state.Map.ExpectChildren(root.Id)
	require.NoError(t, err)
	assert.Equal(t, []parser.NodeId{b.Id}, children)
}

// TestRootCollapse is scenario S4.
func TestRootCollapse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state := parser.Empty()

	a, err := parser.StartContext(ctx, state, parser.KindParenthesizedExpression, 0, nil, nil)
	require.NoError(t, err)

	c, err := parser.StartContext(ctx, state, parser.KindIdentifierExpression, 0, leafToken(0), a)
	require.NoError(t, err)

	_, err = parser.DeleteContext(ctx, state, a.Id)
	require.NoError(t, err)

	rootXor, ok := parser.RootXor(state)
	require.True(t, ok)
	assert.Equal(t, c.Id, rootXor.Id())

	rootCtx, isCtx := rootXor.Context()
	require.True(t, isCtx)
	assert.Equal(t, c.Id, rootCtx.Id)
}

// TestRootCollapseOntoClosedChild covers the sub-case where the promoted
// child was already closed: the root handle must still resolve via XOR.
func TestRootCollapseOntoClosedChild(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state := parser.Empty()

	a, err := parser.StartContext(ctx, state, parser.KindParenthesizedExpression, 0, nil, nil)
	require.NoError(t, err)

	c, err := parser.StartContext(ctx, state, parser.KindIdentifierExpression, 0, leafToken(0), a)
	require.NoError(t, err)

	_, err = parser.EndContext(ctx, state, c,
		parser.NewLeafAst(c.Id, parser.KindIdentifierExpression, token.Range{Start: 0, End: 1}, "x"))
	require.NoError(t, err)

	_, err = parser.DeleteContext(ctx, state, a.Id)
	require.NoError(t, err)

	rootXor, ok := parser.RootXor(state)
	require.True(t, ok)

	astNode, isAst := rootXor.Ast()
	require.True(t, isAst)
	assert.Equal(t, c.Id, astNode.Id)
}

func TestEndContext_DoubleCloseFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state := parser.Empty()

	root, err := parser.StartContext(ctx, state, parser.KindConstant, 0, leafToken(0), nil)
	require.NoError(t, err)

	ast := parser.NewLeafAst(root.Id, parser.KindConstant, token.Range{Start: 0, End: 1}, "x")

	_, err = parser.EndContext(ctx, state, root, ast)
	require.NoError(t, err)

	_, err = parser.EndContext(ctx, state, root, ast)
	require.Error(t, err)

	var invErr *parser.InvariantError
	require.ErrorAs(t, err, &invErr)
}

func TestEndContext_MismatchedIdFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state := parser.Empty()

	root, err := parser.StartContext(ctx, state, parser.KindConstant, 0, nil, nil)
	require.NoError(t, err)

	mismatched := parser.NewLeafAst(root.Id+1, parser.KindConstant, token.Range{}, "x")

	_, err = parser.EndContext(ctx, state, root, mismatched)
	require.Error(t, err)
}

func TestDeleteContext_TwoChildrenFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state := parser.Empty()

	root, err := parser.StartContext(ctx, state, parser.KindListExpression, 0, nil, nil)
	require.NoError(t, err)

	_, err = parser.StartContext(ctx, state, parser.KindCsv, 0, nil, root)
	require.NoError(t, err)

	_, err = parser.StartContext(ctx, state, parser.KindCsv, 1, nil, root)
	require.NoError(t, err)

	_, err = parser.DeleteContext(ctx, state, root.Id)
	require.Error(t, err)

	var invErr *parser.InvariantError
	require.ErrorAs(t, err, &invErr)
}

func TestDeleteContext_NonExistentFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state := parser.Empty()

	_, err := parser.DeleteContext(ctx, state, 999)
	require.Error(t, err)
}

func TestDeepCopyIndependence(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state := parser.Empty()

	root, err := parser.StartContext(ctx, state, parser.KindListExpression, 0, nil, nil)
	require.NoError(t, err)

	_, err = parser.StartContext(ctx, state, parser.KindCsv, 0, nil, root)
	require.NoError(t, err)

	snapshot := state.DeepCopy()

	_, err = parser.StartContext(ctx, state, parser.KindCsv, 1, nil, root)
	require.NoError(t, err)

	originalChildren, err := state.Map.ExpectChildren(root.Id)
	require.NoError(t, err)
	assert.Len(t, originalChildren, 2)

	snapshotChildren, err := snapshot.Map.ExpectChildren(root.Id)
	require.NoError(t, err)
	assert.Len(t, snapshotChildren, 1, "mutating the original must not affect the snapshot")
}

func TestAttributeIndexMatchesPosition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state := parser.Empty()

	root, err := parser.StartContext(ctx, state, parser.KindListExpression, 0, nil, nil)
	require.NoError(t, err)

	first, err := parser.StartContext(ctx, state, parser.KindCsv, 0, nil, root)
	require.NoError(t, err)

	second, err := parser.StartContext(ctx, state, parser.KindCsv, 1, nil, root)
	require.NoError(t, err)

	require.NotNil(t, first.AttributeIndex)
	require.NotNil(t, second.AttributeIndex)
	assert.Equal(t, 0, *first.AttributeIndex)
	assert.Equal(t, 1, *second.AttributeIndex)
	assert.Equal(t, 2, root.AttributeCounter())
}
