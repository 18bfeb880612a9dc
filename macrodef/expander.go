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

// Package macrodef implements spec.md's component F, the macro-def
// registry: given a hirfile.MacroDefId, produce the Expander that knows
// how to turn a call's input token tree into its expansion. It mirrors
// the teacher's parser/macro.go table of named expander functions keyed
// by operator name (AllMacros, Macro.expander), generalized from a
// fixed built-in table to the five kinds spec.md §4.F requires:
// declarative, four built-in flavors (function-like, attribute, derive,
// eager), and procedural.
package macrodef

import (
	"github.com/macrohost/hirexpand/expanderr"
	"github.com/macrohost/hirexpand/tt"
)

// Origin tags where a token in an expansion's output came from (spec.md
// §4.F): Call for anything that survived substitution from the caller's
// own input, Def for anything synthesized from the macro's own
// definition body. Only a Declarative expander can ever report Def;
// every other variant only ever echoes back what it was given.
type Origin int

const (
	OriginCall Origin = iota
	OriginDef
)

func (o Origin) String() string {
	if o == OriginDef {
		return "Def"
	}
	return "Call"
}

// Expander is the uniform contract spec.md §4.F gives every macro
// variant: expand an input (plus, for attribute calls, the attribute's
// own argument tree) into an output token tree, and translate token ids
// across that boundary in both directions.
type Expander interface {
	// Expand runs the macro. attrInput is nil except for attribute
	// macros, where it carries the attribute's own argument tree
	// (spec.md §4.G step 2, "Attr").
	Expand(input *tt.Subtree, attrInput *tt.Subtree) expanderr.ExpandResult[*tt.Subtree]

	// MapIDDown translates a token id in the expander's input space into
	// the id that will represent it in the expander's output (spec.md
	// §4.F). Most variants are the identity; only Declarative's
	// substitution can fan one input id out to many output ids, handled
	// instead by the caller enumerating exp_map entries (spec.md §4.G
	// "Map-token-down"), so MapIDDown itself stays total and 1:1 here.
	MapIDDown(id tt.TokenId) tt.TokenId

	// MapIDUp translates an output-space token id back to an input-space
	// id and the Origin it came from.
	MapIDUp(id tt.TokenId) (tt.TokenId, Origin)
}

// identityMapper is embedded by every non-declarative variant: none of
// them fabricate new positional identity, so ids pass through unchanged
// and Origin is always Call (spec.md §4.F "For all other expanders,
// origin is always Call").
type identityMapper struct{}

func (identityMapper) MapIDDown(id tt.TokenId) tt.TokenId        { return id }
func (identityMapper) MapIDUp(id tt.TokenId) (tt.TokenId, Origin) { return id, OriginCall }
