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

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrohost/hirexpand/common"
	"github.com/macrohost/hirexpand/hirfile"
	"github.com/macrohost/hirexpand/macrodef"
	"github.com/macrohost/hirexpand/syntax"
	"github.com/macrohost/hirexpand/tokenmap"
	"github.com/macrohost/hirexpand/tt"
)

func TestMemDBParseRoundTrip(t *testing.T) {
	m := NewMemDB(macrodef.NewRegistry())
	root := syntax.NewNode(syntax.SOURCE_FILE)
	m.AddFile(common.FileId(1), root)

	got, err := m.Parse(common.FileId(1))
	require.NoError(t, err)
	assert.Same(t, root, got)
}

func TestMemDBParseUnknownFileErrors(t *testing.T) {
	m := NewMemDB(macrodef.NewRegistry())
	_, err := m.Parse(common.FileId(99))
	assert.Error(t, err)
}

func TestMemDBAstIdMapBuiltOnAddFile(t *testing.T) {
	m := NewMemDB(macrodef.NewRegistry())
	root := syntax.NewNode(syntax.SOURCE_FILE, &syntax.Token{Kind: syntax.IDENT, Text: "x"})
	m.AddFile(common.FileId(1), root)

	am, err := m.AstIdMap(hirfile.Real(common.FileId(1)))
	require.NoError(t, err)
	idx, ok := am.IndexOf(root)
	require.True(t, ok)
	assert.Equal(t, 0, int(idx))
}

func TestMemDBSetExpansionAstMap(t *testing.T) {
	m := NewMemDB(macrodef.NewRegistry())
	in := hirfile.NewInterner()
	loc := hirfile.MacroCallLoc{Kind: hirfile.MacroCallKind{Tag: hirfile.FnLike}}
	callId := in.Intern(loc)
	expFile := hirfile.Expansion(callId)

	root := syntax.NewNode(syntax.STMT_LIST)
	m.SetExpansionAstMap(expFile, root)

	am, err := m.AstIdMap(expFile)
	require.NoError(t, err)
	assert.Equal(t, 1, am.Len())
}

func TestMemDBMacroDefLookup(t *testing.T) {
	registry := macrodef.NewRegistry()
	def := hirfile.MacroDefId{Name: "stringify"}
	exp := macrodef.NewBuiltinFnLike("stringify", macrodef.Stringify)
	registry.Register(def, exp)

	m := NewMemDB(registry)
	got, err := m.MacroDef(def)
	require.NoError(t, err)
	assert.Same(t, exp, got)

	_, err = m.MacroDef(hirfile.MacroDefId{Name: "missing"})
	assert.Error(t, err)
}

func TestMemDBMacroArgRoundTrip(t *testing.T) {
	m := NewMemDB(macrodef.NewRegistry())
	in := hirfile.NewInterner()
	callId := in.Intern(hirfile.MacroCallLoc{Kind: hirfile.MacroCallKind{Tag: hirfile.FnLike}})

	sub := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	b := tokenmap.NewBuilder()
	tm := b.Build()
	m.AddMacroArg(callId, sub, tm)

	gotSub, gotTm, ok := m.MacroArg(callId)
	require.True(t, ok)
	assert.Same(t, sub, gotSub)
	assert.Same(t, tm, gotTm)

	_, _, ok = m.MacroArg(hirfile.MacroCallId(9999))
	assert.False(t, ok)
}

func TestMemDBInternerIsStable(t *testing.T) {
	m := NewMemDB(macrodef.NewRegistry())
	assert.NotNil(t, m.Interner())
	assert.Same(t, m.Interner(), m.Interner())
}
