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

package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrohost/hirexpand/common"
)

func tok(kind Kind, text string, start, end common.TextSize) *Token {
	return &Token{Kind: kind, Text: text, Rng: common.NewTextRange(start, end)}
}

func TestKindIsTrivia(t *testing.T) {
	assert.True(t, WHITESPACE.IsTrivia())
	assert.True(t, COMMENT.IsTrivia())
	assert.False(t, DOC_COMMENT.IsTrivia())
	assert.False(t, IDENT.IsTrivia())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "IDENT", IDENT.String())
	assert.Equal(t, "MACRO_CALL", MACRO_CALL.String())
	assert.Equal(t, "UNKNOWN", Kind(9999).String())
}

func TestNodeRangeCoversChildren(t *testing.T) {
	a := tok(IDENT, "foo", 0, 3)
	b := tok(PUNCT, "(", 3, 4)
	n := NewNode(CALL_EXPR, a, b)

	assert.Equal(t, common.NewTextRange(0, 4), n.Range())
	assert.Same(t, n, a.Parent())
	assert.Same(t, n, b.Parent())
}

func TestNodeRangeEmptyNode(t *testing.T) {
	n := NewNode(ITEM_LIST)
	assert.Equal(t, common.TextRange{}, n.Range())
}

func TestNodePushWiresParent(t *testing.T) {
	n := NewNode(BLOCK_EXPR)
	child := tok(IDENT, "x", 0, 1)
	n.Push(child)

	assert.Same(t, n, child.Parent())
	assert.Len(t, n.Children, 1)
}

func TestTokensAndNonTriviaTokens(t *testing.T) {
	ws := tok(WHITESPACE, " ", 1, 2)
	ident := tok(IDENT, "x", 0, 1)
	inner := NewNode(PATH_EXPR, ident, ws)
	n := NewNode(EXPR_STMT, inner)

	all := n.Tokens()
	assert.Len(t, all, 2)

	nonTrivia := n.NonTriviaTokens()
	require.Len(t, nonTrivia, 1)
	assert.Equal(t, "x", nonTrivia[0].Text)
}

func TestAncestorsInnermostFirst(t *testing.T) {
	leaf := tok(IDENT, "x", 0, 1)
	mid := NewNode(PATH_EXPR, leaf)
	top := NewNode(EXPR_STMT, mid)

	chain := Ancestors(mid)
	assert.Equal(t, []*Node{mid, top}, chain)
}

func TestFindTokenExactRange(t *testing.T) {
	a := tok(IDENT, "foo", 0, 3)
	b := tok(IDENT, "bar", 4, 7)
	n := NewNode(CALL_EXPR, a, b)

	found := n.FindToken(common.NewTextRange(4, 7))
	require.NotNil(t, found)
	assert.Equal(t, "bar", found.Text)

	assert.Nil(t, n.FindToken(common.NewTextRange(100, 101)))
}
