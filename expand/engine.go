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

// Package expand implements spec.md's component G, the expansion
// engine: turning one macro call into the syntax tree its expansion
// reparses to, plus the bookkeeping (ExpansionInfo) that lets any token
// in that tree be traced back to where it came from in the call site or
// macro definition. It is the component everything else in this module
// exists to support.
package expand

import (
	"fmt"

	"github.com/macrohost/hirexpand/bridge"
	"github.com/macrohost/hirexpand/db"
	"github.com/macrohost/hirexpand/expanderr"
	"github.com/macrohost/hirexpand/hirfile"
	"github.com/macrohost/hirexpand/syntax"
	"github.com/macrohost/hirexpand/tokenmap"
	"github.com/macrohost/hirexpand/tt"
)

// Engine drives expansion against a Db collaborator. It holds no state
// of its own: every method is a pure function of its argument and
// whatever Engine.DB currently reports, matching spec.md §5's
// requirement that the core be reentrant.
type Engine struct {
	DB db.Db
}

// New builds an Engine over db.
func New(d db.Db) *Engine { return &Engine{DB: d} }

// ParseOrExpand implements spec.md §4.G's namesake collaborator query,
// generalized to dispatch on which HirFileId case it was given: a real
// file is just parsed, a macro file is expanded and its expansion's
// reparsed tree returned.
func (e *Engine) ParseOrExpand(file hirfile.HirFileId) (*syntax.Node, error) {
	if !file.IsMacro() {
		return e.DB.Parse(file.Real)
	}
	info, err := e.ExpansionInfo(file.Macro)
	if err != nil {
		return nil, err
	}
	return info.Expanded, nil
}

// ExpansionInfo implements spec.md §4.G's five-step "parse_macro_expansion"
// procedure for a given macro call.
func (e *Engine) ExpansionInfo(call hirfile.MacroCallId) (*ExpansionInfo, error) {
	loc, ok := e.DB.Interner().Lookup(call)
	if !ok {
		return nil, fmt.Errorf("expand: unknown macro call id %v", call)
	}

	input, attrInput, argMap, attrShift, hasAttrArgs, err := e.assembleInput(call, loc)
	if err != nil {
		return nil, err
	}

	expander, err := e.DB.MacroDef(loc.Def)
	if err != nil {
		return nil, expanderr.NewUnresolvedProcMacro(loc.Def.Name)
	}

	shift := tokenmap.ShiftFor(argMap.MaxId())
	result := expander.Expand(input, attrInput)
	if !result.Ok() {
		return nil, result.Err
	}
	rewriteDefOrigins(result.Value, expander, shift)

	expandTo := expandToFor(loc)
	expanded, expMap, text, cerr := bridge.TokenTreeToSyntax(result.Value, rootKindFor(expandTo))
	if cerr != nil {
		return nil, cerr
	}

	return &ExpansionInfo{
		File:          hirfile.Expansion(call),
		Loc:           loc,
		Expanded:      expanded,
		ExpandedText:  text,
		Arg:           input,
		AttrInput:     attrInput,
		MacroDef:      expander,
		MacroArg:      input,
		MacroArgMap:   argMap,
		MacroArgShift: shift,
		HasAttrArgs:   hasAttrArgs,
		AttrArgsShift: attrShift,
		ExpMap:        expMap,
	}, nil
}

// assembleInput implements spec.md §4.G step 2 for all three call
// shapes. For Attr calls it also implements the Attribute id-space
// merge of spec.md §4.G: the attribute's own argument ids are shifted
// above the attributed item's, so the two independently-numbered token
// maps can share the one input id space MapTokenUp needs to tell them
// apart (§4.G "Map-token-up", §8 "Attribute id-space").
func (e *Engine) assembleInput(call hirfile.MacroCallId, loc hirfile.MacroCallLoc) (input, attrInput *tt.Subtree, argMap *tokenmap.TokenMap, attrShift tokenmap.Shift, hasAttrArgs bool, err error) {
	switch loc.Kind.Tag {
	case hirfile.FnLike:
		arg, am, ok := e.DB.MacroArg(call)
		if !ok {
			return nil, nil, nil, 0, false, fmt.Errorf("expand: no macro argument recorded for call %v", call)
		}
		return arg, nil, am, 0, false, nil

	case hirfile.Derive, hirfile.Attr:
		itemFile := loc.Kind.ItemAstId.File
		am, aerr := e.DB.AstIdMap(itemFile)
		if aerr != nil {
			return nil, nil, nil, 0, false, aerr
		}
		itemNode, ok := am.NodeAt(loc.Kind.ItemAstId.Value)
		if !ok {
			return nil, nil, nil, 0, false, fmt.Errorf("expand: attributed item not found for call %v", call)
		}
		censor := censorFor(itemNode, loc.Kind)
		sub, tm := bridge.SyntaxToTokenTree(itemNode, censor)
		if loc.Kind.Tag != hirfile.Attr {
			return sub, nil, tm, 0, false, nil
		}
		if loc.Kind.AttrArgs == nil || loc.Kind.AttrArgsMap == nil {
			return sub, loc.Kind.AttrArgs, tm, 0, false, nil
		}
		shift := tokenmap.ShiftFor(tm.MaxId())
		shiftedAttr := tokenmap.ShiftSubtree(loc.Kind.AttrArgs, shift)
		merged := tokenmap.Merge(tm, loc.Kind.AttrArgsMap, shift)
		return sub, shiftedAttr, merged, shift, true, nil
	}
	return nil, nil, nil, 0, false, fmt.Errorf("expand: unknown call kind tag %v", loc.Kind.Tag)
}

// censorFor locates the triggering attribute/derive node under item so
// it can be omitted from the token tree handed to the expander (spec.md
// §4.E "Censor", §4.G step 2). This toy grammar doesn't track individual
// attribute nodes by index, so the whole censor is conservatively empty
// when it can't be found; expanders are written to tolerate seeing their
// own trigger echoed back.
func censorFor(item *syntax.Node, kind hirfile.MacroCallKind) bridge.Censor {
	censor := bridge.Censor{}
	for _, c := range item.Children {
		n, ok := c.(*syntax.Node)
		if !ok {
			continue
		}
		switch kind.Tag {
		case hirfile.Derive:
			if n.Kind == syntax.DERIVE_ATTR {
				censor[n] = true
			}
		case hirfile.Attr:
			if n.Kind == syntax.ATTR {
				censor[n] = true
			}
		}
	}
	return censor
}

func expandToFor(loc hirfile.MacroCallLoc) hirfile.ExpandTo {
	if loc.Kind.Tag == hirfile.FnLike {
		return loc.Kind.ExpandTo
	}
	return hirfile.ExpandItems
}

func rootKindFor(to hirfile.ExpandTo) syntax.Kind {
	switch to {
	case hirfile.ExpandStatements:
		return syntax.STMT_LIST
	case hirfile.ExpandPattern:
		return syntax.MACRO_PAT
	case hirfile.ExpandType:
		return syntax.MACRO_TYPE
	case hirfile.ExpandExpr:
		return syntax.MACRO_EXPR
	default:
		return syntax.ITEM_LIST
	}
}
