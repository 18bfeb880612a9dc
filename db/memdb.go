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
	"fmt"
	"sync"

	"github.com/macrohost/hirexpand/astid"
	"github.com/macrohost/hirexpand/common"
	"github.com/macrohost/hirexpand/hirfile"
	"github.com/macrohost/hirexpand/macrodef"
	"github.com/macrohost/hirexpand/syntax"
	"github.com/macrohost/hirexpand/tokenmap"
	"github.com/macrohost/hirexpand/tt"
)

// MemDB is an in-memory Db good enough to drive the package tests of
// expand, ascend and eager: every real file's parse
// result and every call's argument tree is registered up front by the
// caller rather than produced by an actual grammar parser or a real
// incremental engine, since both are explicitly out of this module's
// scope (spec.md §1 "assumed ... a syntax tree").
type MemDB struct {
	mu        sync.RWMutex
	files     map[common.FileId]*syntax.Node
	astMaps   map[hirfile.HirFileId]*astid.Map
	args      map[hirfile.MacroCallId]macroArg
	registry  *macrodef.Registry
	interner  *hirfile.Interner
}

type macroArg struct {
	sub *tt.Subtree
	tm  *tokenmap.TokenMap
}

// NewMemDB builds an empty MemDB backed by registry for MacroDef
// lookups and a fresh hirfile.Interner for intern_macro/lookup_intern_macro.
func NewMemDB(registry *macrodef.Registry) *MemDB {
	return &MemDB{
		files:    make(map[common.FileId]*syntax.Node),
		astMaps:  make(map[hirfile.HirFileId]*astid.Map),
		args:     make(map[hirfile.MacroCallId]macroArg),
		registry: registry,
		interner: hirfile.NewInterner(),
	}
}

// AddFile registers file's already-parsed syntax tree. Real parsing
// (text -> syntax.Node) is outside this module's scope; callers build
// root however their test fixture needs to.
func (m *MemDB) AddFile(file common.FileId, root *syntax.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[file] = root
	m.astMaps[hirfile.Real(file)] = astid.Build(root)
}

// AddMacroArg registers the argument token tree and token map for a
// call that has already been interned.
func (m *MemDB) AddMacroArg(call hirfile.MacroCallId, sub *tt.Subtree, tm *tokenmap.TokenMap) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.args[call] = macroArg{sub: sub, tm: tm}
}

// SetExpansionAstMap registers the ast-id map for an expansion file
// (built after package expand reparses its output), so a nested macro
// call inside an expansion can itself be ast-id-addressed.
func (m *MemDB) SetExpansionAstMap(file hirfile.HirFileId, root *syntax.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.astMaps[file] = astid.Build(root)
}

func (m *MemDB) Parse(file common.FileId) (*syntax.Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	root, ok := m.files[file]
	if !ok {
		return nil, fmt.Errorf("db: no such file %v", file)
	}
	return root, nil
}

func (m *MemDB) AstIdMap(file hirfile.HirFileId) (*astid.Map, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	am, ok := m.astMaps[file]
	if !ok {
		return nil, fmt.Errorf("db: no ast-id map for file %+v", file)
	}
	return am, nil
}

func (m *MemDB) MacroDef(id hirfile.MacroDefId) (macrodef.Expander, error) {
	exp, ok := m.registry.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("db: no expander registered for %+v", id)
	}
	return exp, nil
}

func (m *MemDB) MacroArg(call hirfile.MacroCallId) (*tt.Subtree, *tokenmap.TokenMap, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.args[call]
	if !ok {
		return nil, nil, false
	}
	return a.sub, a.tm, true
}

func (m *MemDB) Interner() *hirfile.Interner { return m.interner }
