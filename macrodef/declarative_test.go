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

	"github.com/macrohost/hirexpand/common"
	"github.com/macrohost/hirexpand/tokenmap"
	"github.com/macrohost/hirexpand/tt"
)

func dollar() *tt.Leaf { return tt.NewPunct('$', tt.Joint, tt.NoTokenId) }

func TestDeclarativeSingleMetaVarSubstitution(t *testing.T) {
	pattern := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	pattern.Push(dollar())
	pattern.Push(tt.NewIdent("a", tt.NoTokenId))

	body := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	body.Push(dollar())
	body.Push(tt.NewIdent("a", tt.NoTokenId))

	d := NewDeclarative([]Rule{{Pattern: pattern, Body: body}}, nil)

	input := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	input.Push(tt.NewIdent("x", 5))

	result := d.Expand(input, nil)
	require.True(t, result.Ok())
	require.Len(t, result.Value.TokenTrees, 1)
	leaf := result.Value.TokenTrees[0].(*tt.Leaf)
	assert.Equal(t, "x", leaf.Text)
	assert.Equal(t, tt.TokenId(5), leaf.Id)
}

func TestDeclarativeNoRuleMatchesIsError(t *testing.T) {
	pattern := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	pattern.Push(tt.NewIdent("literal", tt.NoTokenId))
	body := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)

	d := NewDeclarative([]Rule{{Pattern: pattern, Body: body}}, nil)

	input := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	input.Push(tt.NewIdent("other", tt.NoTokenId))

	result := d.Expand(input, nil)
	assert.False(t, result.Ok())
}

func TestDeclarativeFirstMatchingRuleWins(t *testing.T) {
	litPattern := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	litPattern.Push(tt.NewIdent("zero", tt.NoTokenId))
	litBody := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	litBody.Push(tt.NewLiteral("0", tt.NoTokenId))

	wildPattern := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	wildPattern.Push(dollar())
	wildPattern.Push(tt.NewIdent("v", tt.NoTokenId))
	wildBody := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	wildBody.Push(tt.NewLiteral("1", tt.NoTokenId))

	d := NewDeclarative([]Rule{
		{Pattern: litPattern, Body: litBody},
		{Pattern: wildPattern, Body: wildBody},
	}, nil)

	input := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	input.Push(tt.NewIdent("zero", tt.NoTokenId))

	result := d.Expand(input, nil)
	require.True(t, result.Ok())
	assert.Equal(t, "0", result.Value.TokenTrees[0].(*tt.Leaf).Text)
}

// $( $x ),* => $( $x )*
func TestDeclarativeRepetitionWithSeparator(t *testing.T) {
	innerPattern := []tt.TokenTree{dollar(), tt.NewIdent("x", tt.NoTokenId)}
	groupPattern := tt.NewSubtree(tt.DelimParen, tt.NoTokenId)
	groupPattern.TokenTrees = innerPattern

	pattern := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	pattern.Push(dollar())
	pattern.Push(groupPattern)
	pattern.Push(tt.NewPunct(',', tt.Alone, tt.NoTokenId))
	pattern.Push(tt.NewPunct('*', tt.Alone, tt.NoTokenId))

	innerBody := []tt.TokenTree{dollar(), tt.NewIdent("x", tt.NoTokenId)}
	groupBody := tt.NewSubtree(tt.DelimParen, tt.NoTokenId)
	groupBody.TokenTrees = innerBody

	body := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	body.Push(dollar())
	body.Push(groupBody)
	body.Push(tt.NewPunct('*', tt.Alone, tt.NoTokenId))

	d := NewDeclarative([]Rule{{Pattern: pattern, Body: body}}, nil)

	input := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	input.Push(tt.NewIdent("p", 1))
	input.Push(tt.NewPunct(',', tt.Alone, tt.NoTokenId))
	input.Push(tt.NewIdent("q", 2))
	input.Push(tt.NewPunct(',', tt.Alone, tt.NoTokenId))
	input.Push(tt.NewIdent("r", 3))

	result := d.Expand(input, nil)
	require.True(t, result.Ok())
	require.Len(t, result.Value.TokenTrees, 3)
	assert.Equal(t, "p", result.Value.TokenTrees[0].(*tt.Leaf).Text)
	assert.Equal(t, "q", result.Value.TokenTrees[1].(*tt.Leaf).Text)
	assert.Equal(t, "r", result.Value.TokenTrees[2].(*tt.Leaf).Text)
}

func TestDeclarativeMapIDUpReportsDefOrigin(t *testing.T) {
	b := tokenmap.NewBuilder()
	defId := b.AllocLeaf(common.NewTextRange(0, 3), tokenmap.SyntaxKind(1))
	defMap := b.Build()

	d := NewDeclarative(nil, defMap)

	gotId, origin := d.MapIDUp(defId)
	assert.Equal(t, defId, gotId)
	assert.Equal(t, OriginDef, origin)

	_, origin2 := d.MapIDUp(defId + 100)
	assert.Equal(t, OriginCall, origin2)
}

func TestDeclarativeMapIDDownIsIdentity(t *testing.T) {
	d := NewDeclarative(nil, nil)
	assert.Equal(t, tt.TokenId(7), d.MapIDDown(7))
}
