// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrohost/hirexpand/common"
	"github.com/macrohost/hirexpand/syntax"
	"github.com/macrohost/hirexpand/tokenmap"
	"github.com/macrohost/hirexpand/tt"
)

func tok(kind syntax.Kind, text string, start, end common.TextSize) *syntax.Token {
	return &syntax.Token{Kind: kind, Text: text, Rng: common.NewTextRange(start, end)}
}

// f(a,b)
func buildCallTree() *syntax.Node {
	f := tok(syntax.IDENT, "f", 0, 1)
	lparen := tok(syntax.PUNCT, "(", 1, 2)
	a := tok(syntax.IDENT, "a", 2, 3)
	comma := tok(syntax.PUNCT, ",", 3, 4)
	b := tok(syntax.IDENT, "b", 4, 5)
	rparen := tok(syntax.PUNCT, ")", 5, 6)
	return syntax.NewNode(syntax.CALL_EXPR, f, lparen, a, comma, b, rparen)
}

func TestSyntaxToTokenTreeGroupsByDelimiter(t *testing.T) {
	root := buildCallTree()
	sub, tm := SyntaxToTokenTree(root, nil)

	require.Len(t, sub.TokenTrees, 2)
	fLeaf, ok := sub.TokenTrees[0].(*tt.Leaf)
	require.True(t, ok)
	assert.Equal(t, "f", fLeaf.Text)

	paren, ok := sub.TokenTrees[1].(*tt.Subtree)
	require.True(t, ok)
	assert.Equal(t, tt.DelimParen, paren.Delimiter)
	require.Len(t, paren.TokenTrees, 3)
	assert.Equal(t, "a", paren.TokenTrees[0].(*tt.Leaf).Text)
	assert.Equal(t, ",", paren.TokenTrees[1].(*tt.Leaf).Text)
	assert.Equal(t, "b", paren.TokenTrees[2].(*tt.Leaf).Text)

	open, close, hasClose, ok := tm.DelimiterRanges(paren.Id)
	require.True(t, ok)
	assert.True(t, hasClose)
	assert.Equal(t, common.NewTextRange(1, 2), open)
	assert.Equal(t, common.NewTextRange(5, 6), close)
}

func TestSyntaxToTokenTreeSkipsTrivia(t *testing.T) {
	ident := tok(syntax.IDENT, "x", 0, 1)
	ws := tok(syntax.WHITESPACE, " ", 1, 2)
	ident2 := tok(syntax.IDENT, "y", 2, 3)
	root := syntax.NewNode(syntax.BLOCK_EXPR, ident, ws, ident2)

	sub, _ := SyntaxToTokenTree(root, nil)
	require.Len(t, sub.TokenTrees, 2)
	assert.Equal(t, "x", sub.TokenTrees[0].(*tt.Leaf).Text)
	assert.Equal(t, "y", sub.TokenTrees[1].(*tt.Leaf).Text)
}

func TestSyntaxToTokenTreeUnterminatedDelimiterFlattens(t *testing.T) {
	ident := tok(syntax.IDENT, "x", 0, 1)
	lparen := tok(syntax.PUNCT, "(", 1, 2)
	inner := tok(syntax.IDENT, "y", 2, 3)
	root := syntax.NewNode(syntax.BLOCK_EXPR, ident, lparen, inner)

	sub, _ := SyntaxToTokenTree(root, nil)
	// No closer ever arrived: the opener is flattened back in as a punct
	// leaf rather than dropped.
	require.Len(t, sub.TokenTrees, 3)
	assert.Equal(t, "x", sub.TokenTrees[0].(*tt.Leaf).Text)
	assert.Equal(t, "(", sub.TokenTrees[1].(*tt.Leaf).Text)
	assert.Equal(t, "y", sub.TokenTrees[2].(*tt.Leaf).Text)
}

func TestSyntaxToTokenTreeCensorsNode(t *testing.T) {
	attr := tok(syntax.IDENT, "attr", 0, 4)
	attrNode := syntax.NewNode(syntax.ATTR, attr)
	item := tok(syntax.IDENT, "item", 4, 8)
	root := syntax.NewNode(syntax.FN, attrNode, item)

	censor := Censor{attrNode: true}
	sub, _ := SyntaxToTokenTree(root, censor)

	require.Len(t, sub.TokenTrees, 1)
	assert.Equal(t, "item", sub.TokenTrees[0].(*tt.Leaf).Text)
}

func TestSyntaxToTokenTreeCollapsesSingleSubtreeRoot(t *testing.T) {
	lparen := tok(syntax.PUNCT, "(", 0, 1)
	inner := tok(syntax.IDENT, "x", 1, 2)
	rparen := tok(syntax.PUNCT, ")", 2, 3)
	root := syntax.NewNode(syntax.BLOCK_EXPR, lparen, inner, rparen)

	sub, _ := SyntaxToTokenTree(root, nil)
	assert.Equal(t, tt.DelimParen, sub.Delimiter)
	require.Len(t, sub.TokenTrees, 1)
	assert.Equal(t, "x", sub.TokenTrees[0].(*tt.Leaf).Text)
}

func TestTokenTreeToSyntaxSynthesizesText(t *testing.T) {
	root := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	root.Push(tt.NewIdent("x", 0))
	paren := tt.NewSubtree(tt.DelimParen, 1)
	paren.Push(tt.NewIdent("y", 2))
	root.Push(paren)

	node, tm, text, err := TokenTreeToSyntax(root, syntax.MACRO_EXPR)
	require.NoError(t, err)
	assert.Equal(t, syntax.MACRO_EXPR, node.Kind)
	assert.Contains(t, text, "x")
	assert.Contains(t, text, "(y)")

	xRng, ok := tm.FirstRangeByToken(0, tokenmap.AnyKind)
	require.True(t, ok)
	assert.Equal(t, "x", text[xRng.Start:xRng.End])
}

func TestTokenTreeToSyntaxNilInputErrors(t *testing.T) {
	_, _, _, err := TokenTreeToSyntax(nil, syntax.MACRO_EXPR)
	assert.Error(t, err)
}

func TestSplitOnSeparatorProducesFragments(t *testing.T) {
	sub := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	sub.Push(tt.NewIdent("a", 0))
	sub.Push(tt.NewPunct(',', tt.Alone, 1))
	sub.Push(tt.NewIdent("b", 2))
	sub.Push(tt.NewPunct(',', tt.Alone, 3))
	sub.Push(tt.NewIdent("c", 4))

	frags := SplitOnSeparator(sub, ',')
	require.Len(t, frags, 3)
	assert.Equal(t, "a", frags[0].TokenTrees[0].(*tt.Leaf).Text)
	assert.Equal(t, "b", frags[1].TokenTrees[0].(*tt.Leaf).Text)
	assert.Equal(t, "c", frags[2].TokenTrees[0].(*tt.Leaf).Text)
}

func TestSplitOnSeparatorTrailingSeparatorHasNoEmptyFragment(t *testing.T) {
	sub := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	sub.Push(tt.NewIdent("a", 0))
	sub.Push(tt.NewPunct(',', tt.Alone, 1))

	frags := SplitOnSeparator(sub, ',')
	require.Len(t, frags, 1)
	assert.Equal(t, "a", frags[0].TokenTrees[0].(*tt.Leaf).Text)
}

func TestSplitOnSeparatorEmptyInput(t *testing.T) {
	sub := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	frags := SplitOnSeparator(sub, ',')
	require.Len(t, frags, 1)
	assert.Len(t, frags[0].TokenTrees, 0)
}
