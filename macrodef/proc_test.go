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
	"github.com/macrohost/hirexpand/procmacro"
	"github.com/macrohost/hirexpand/tt"
)

func TestProcExpandSuccessReturnsClientOutput(t *testing.T) {
	client := procmacro.NewLocalClient()
	want := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	client.Register("derive_me", func(req procmacro.ExpandRequest) (*tt.Subtree, error) {
		return want, nil
	})

	p := NewProc("derive_me", ProcCustomDerive, client)
	result := p.Expand(tt.NewSubtree(tt.DelimNone, tt.NoTokenId), nil)

	require.True(t, result.Ok())
	assert.Same(t, want, result.Value)
}

func TestProcExpandNotLoadedReclassifiesAsUnresolved(t *testing.T) {
	client := procmacro.NewLocalClient()
	p := NewProc("missing", ProcFnLike, client)

	result := p.Expand(tt.NewSubtree(tt.DelimNone, tt.NoTokenId), nil)
	require.False(t, result.Ok())
	assert.Equal(t, expanderr.UnresolvedProcMacro, result.Err.Kind)
}

func TestProcExpandPanicReclassifiesAsOther(t *testing.T) {
	client := procmacro.NewLocalClient()
	client.Register("boom", func(req procmacro.ExpandRequest) (*tt.Subtree, error) {
		panic("bad state")
	})
	p := NewProc("boom", ProcAttr, client)

	result := p.Expand(tt.NewSubtree(tt.DelimNone, tt.NoTokenId), nil)
	require.False(t, result.Ok())
	assert.Equal(t, expanderr.Other, result.Err.Kind)
	assert.Contains(t, result.Err.Message, "panicked")
}

func TestProcMapIDUpIsAlwaysCallOrigin(t *testing.T) {
	p := NewProc("x", ProcFnLike, procmacro.NewLocalClient())
	id, origin := p.MapIDUp(9)
	assert.Equal(t, tt.TokenId(9), id)
	assert.Equal(t, OriginCall, origin)
}
