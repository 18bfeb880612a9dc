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

package hirfile

import "github.com/macrohost/hirexpand/interner"

// Interner is the concrete component-A interner specialized to
// MacroCallLoc, and the LocSource every other component uses to resolve
// a MacroCallId. It is the lifetime root for every HirFileId that wraps
// a macro call (spec.md §3 "Invariants": "the interner is the lifetime
// root").
type Interner struct {
	in *interner.Interner[MacroCallLoc]
}

var _ LocSource = (*Interner)(nil)

// NewInterner creates an empty macro-call interner.
func NewInterner() *Interner {
	return &Interner{in: interner.New[MacroCallLoc]()}
}

// Intern assigns (or recovers) the stable MacroCallId for loc.
func (i *Interner) Intern(loc MacroCallLoc) MacroCallId { return i.in.Intern(loc) }

// Lookup recovers the MacroCallLoc behind id, implementing LocSource.
func (i *Interner) Lookup(id MacroCallId) (MacroCallLoc, bool) { return i.in.Lookup(id) }
