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

package expand

import (
	"github.com/macrohost/hirexpand/hirfile"
	"github.com/macrohost/hirexpand/macrodef"
	"github.com/macrohost/hirexpand/syntax"
	"github.com/macrohost/hirexpand/tokenmap"
	"github.com/macrohost/hirexpand/tt"
)

// ExpansionInfo is spec.md §4.G step 5's return value: everything the
// rest of the module needs to treat one macro call's expansion as a
// fully addressable virtual file.
type ExpansionInfo struct {
	// File is the HirFileId this expansion belongs to (the MacroCallId
	// wrapped as a virtual file).
	File hirfile.HirFileId
	Loc  hirfile.MacroCallLoc

	// Expanded is the reparsed syntax tree; ExpandedText is the
	// synthesized source text it was parsed from.
	Expanded     *syntax.Node
	ExpandedText string

	// Arg is the input token tree the expander was given (the call's
	// argument, or the censored attributed item). AttrInput is the
	// attribute's own argument tree, non-nil only for Attr calls.
	Arg       *tt.Subtree
	AttrInput *tt.Subtree

	MacroDef macrodef.Expander

	// MacroArg/MacroArgMap duplicate Arg/the primary input's token map
	// under the names spec.md §4.G uses for them. For Attr calls,
	// MacroArgMap is the merged input space of spec.md §4.G's Attribute
	// id-space: the item's own ids plus the attribute-argument ids
	// shifted by AttrArgsShift.
	MacroArg      *tt.Subtree
	MacroArgMap   *tokenmap.TokenMap
	MacroArgShift tokenmap.Shift

	// HasAttrArgs/AttrArgsShift carry the attribute id-space's own shift
	// boundary (spec.md §4.G "Map-token-up", Attr branch): un-shifting an
	// expansion-space id through AttrArgsShift succeeding means the token
	// came from the attribute's own argument, not the attributed item.
	// Zero/false for every call kind but Attr.
	HasAttrArgs   bool
	AttrArgsShift tokenmap.Shift

	// ExpMap is the expansion map: the token map built while converting
	// the expander's output subtree back into Expanded.
	ExpMap *tokenmap.TokenMap
}
