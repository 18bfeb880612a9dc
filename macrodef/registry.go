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
	"fmt"
	"sync"

	"github.com/macrohost/hirexpand/hirfile"
)

// Registry resolves a hirfile.MacroDefId to its Expander (spec.md's
// component F contract: "Given a MacroDefId produce an expander").
// It is grounded on the teacher's parser/macro.go AllMacros table: a
// name-keyed registration list consulted once per lookup, generalized
// from a single fixed built-in table to cover all eight
// hirfile.MacroDefKind variants behind one uniform Expander interface.
type Registry struct {
	mu   sync.RWMutex
	byID map[hirfile.MacroDefId]Expander
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[hirfile.MacroDefId]Expander)}
}

// Register installs exp as the expander for def. Re-registering the
// same def replaces its expander (used by a host reloading a changed
// macro_rules! definition across an edit).
func (r *Registry) Register(def hirfile.MacroDefId, exp Expander) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[def] = exp
}

// Lookup returns the expander registered for def, if any.
func (r *Registry) Lookup(def hirfile.MacroDefId) (Expander, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exp, ok := r.byID[def]
	return exp, ok
}

// MustLookup is Lookup but panics with a descriptive message instead of
// returning ok=false, for call sites that have already established
// (e.g. via hirfile invariants) that def must be registered.
func (r *Registry) MustLookup(def hirfile.MacroDefId) Expander {
	exp, ok := r.Lookup(def)
	if !ok {
		panic(fmt.Sprintf("macrodef: no expander registered for def %+v", def))
	}
	return exp
}
