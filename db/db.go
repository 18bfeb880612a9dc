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

// Package db declares the collaborator interface spec.md §6 requires:
// the set of queries the incremental engine supplies to the expansion
// core (package expand), and the handles the core hands back. This
// module carries no real incremental engine — spec.md §5 explicitly
// assigns caching, cancellation, and cycle detection to "the
// collaborator" — so Db is just the seam, plus MemDB, a small in-memory
// implementation realistic enough to exercise and test the core against
// without one.
package db

import (
	"github.com/macrohost/hirexpand/astid"
	"github.com/macrohost/hirexpand/common"
	"github.com/macrohost/hirexpand/hirfile"
	"github.com/macrohost/hirexpand/macrodef"
	"github.com/macrohost/hirexpand/syntax"
	"github.com/macrohost/hirexpand/tokenmap"
	"github.com/macrohost/hirexpand/tt"
)

// Db is spec.md §6's "Collaborator inputs (to the core)", minus
// parse_or_expand and parse_macro_expansion: those two are the
// expansion engine's own job (package expand) and are implemented in
// terms of the primitives below, not supplied by the collaborator.
type Db interface {
	// Parse returns the syntax tree for a real source file.
	Parse(file common.FileId) (*syntax.Node, error)

	// AstIdMap returns the stable-index table for any virtual file,
	// built once per parse and reused across reparses of unchanged
	// shape (spec.md §4.C).
	AstIdMap(file hirfile.HirFileId) (*astid.Map, error)

	// MacroDef resolves a definition id to its expander. Per spec.md §6
	// this fails with ExpandError::UnresolvedProcMacro if a procedural
	// macro's host library isn't available; Db returns that case as a
	// plain error and expand.Engine reclassifies it.
	MacroDef(id hirfile.MacroDefId) (macrodef.Expander, error)

	// MacroArg returns a call's input token tree together with the
	// token map recording where each of its tokens sits in the call
	// site's source text. ok is false if the call's syntax could not be
	// recovered (e.g. it was deleted by a subsequent edit).
	MacroArg(call hirfile.MacroCallId) (arg *tt.Subtree, argMap *tokenmap.TokenMap, ok bool)

	// Interner exposes the id <-> MacroCallLoc interning surface
	// (spec.md §4.A, "intern_macro" / "lookup_intern_macro").
	Interner() *hirfile.Interner
}
