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

package macrodef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrohost/hirexpand/expanderr"
	"github.com/macrohost/hirexpand/tt"
)

func TestStringifyRendersInputAsQuotedString(t *testing.T) {
	input := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	input.Push(tt.NewIdent("foo", tt.NoTokenId))
	input.Push(tt.NewPunct('+', tt.Alone, tt.NoTokenId))
	input.Push(tt.NewIdent("bar", tt.NoTokenId))

	result := Stringify(input, nil)
	require.True(t, result.Ok())
	require.Len(t, result.Value.TokenTrees, 1)
	leaf := result.Value.TokenTrees[0].(*tt.Leaf)
	assert.Equal(t, tt.LeafLiteral, leaf.Kind)
	assert.Contains(t, leaf.Text, "foo")
	assert.Contains(t, leaf.Text, "bar")
}

func TestConcatJoinsLiteralsStrippingQuotes(t *testing.T) {
	input := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	input.Push(tt.NewLiteral(`"foo"`, tt.NoTokenId))
	input.Push(tt.NewPunct(',', tt.Alone, tt.NoTokenId))
	input.Push(tt.NewLiteral(`"bar"`, tt.NoTokenId))

	result := Concat(input, nil)
	require.True(t, result.Ok())
	require.Len(t, result.Value.TokenTrees, 1)
	leaf := result.Value.TokenTrees[0].(*tt.Leaf)
	assert.Equal(t, `"foobar"`, leaf.Text)
}

func TestConcatSkipsNonLiteralChildren(t *testing.T) {
	input := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	input.Push(tt.NewIdent("notaliteral", tt.NoTokenId))
	input.Push(tt.NewPunct(',', tt.Alone, tt.NoTokenId))
	input.Push(tt.NewLiteral(`"kept"`, tt.NoTokenId))

	result := Concat(input, nil)
	require.True(t, result.Ok())
	leaf := result.Value.TokenTrees[0].(*tt.Leaf)
	assert.Equal(t, `"kept"`, leaf.Text)
}

func TestBuiltinFnLikeDelegatesToFn(t *testing.T) {
	called := false
	fn := func(input, attrInput *tt.Subtree) expanderr.ExpandResult[*tt.Subtree] {
		called = true
		return expanderr.ExpandResult[*tt.Subtree]{Value: input}
	}
	b := NewBuiltinFnLike("mine", fn)
	input := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)

	result := b.Expand(input, nil)
	assert.True(t, called)
	assert.Same(t, input, result.Value)

	id, origin := b.MapIDUp(3)
	assert.Equal(t, tt.TokenId(3), id)
	assert.Equal(t, OriginCall, origin)
}

func TestBuiltinDeriveIgnoresAttrInput(t *testing.T) {
	var seenAttr *tt.Subtree = tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	fn := func(input, attrInput *tt.Subtree) expanderr.ExpandResult[*tt.Subtree] {
		seenAttr = attrInput
		return expanderr.ExpandResult[*tt.Subtree]{Value: input}
	}
	d := NewBuiltinDerive("Debug", fn)
	input := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)

	d.Expand(input, tt.NewSubtree(tt.DelimParen, tt.NoTokenId))
	assert.Nil(t, seenAttr)
}
