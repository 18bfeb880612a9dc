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

	"github.com/macrohost/hirexpand/hirfile"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	def := hirfile.MacroDefId{Name: "stringify", Kind: hirfile.DefBuiltinFnLike}
	exp := NewBuiltinFnLike("stringify", Stringify)

	r.Register(def, exp)

	got, ok := r.Lookup(def)
	require.True(t, ok)
	assert.Same(t, exp, got)
}

func TestRegistryLookupMissingIsNotOk(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup(hirfile.MacroDefId{Name: "missing"})
	assert.False(t, ok)
}

func TestRegistryMustLookupPanicsWhenMissing(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() {
		r.MustLookup(hirfile.MacroDefId{Name: "missing"})
	})
}

func TestRegistryReregisterReplaces(t *testing.T) {
	r := NewRegistry()
	def := hirfile.MacroDefId{Name: "concat"}
	first := NewBuiltinFnLike("concat", Concat)
	second := NewBuiltinFnLike("concat", Concat)

	r.Register(def, first)
	r.Register(def, second)

	got := r.MustLookup(def)
	assert.Same(t, second, got)
}
