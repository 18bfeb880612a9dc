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
	"fmt"

	"github.com/macrohost/hirexpand/common"
	"github.com/macrohost/hirexpand/macrodef"
	"github.com/macrohost/hirexpand/tokenmap"
	"github.com/macrohost/hirexpand/tt"
)

// rewriteDefOrigins walks sub in place and, for every leaf or delimiter
// id expander.MapIDUp reports as Origin::Def, replaces it with its
// shifted counterpart. This is what keeps a declarative expander's
// output collision-free: the substituted (Call-origin) leaves keep the
// caller's own argument-map ids verbatim, while the leaves copied
// straight out of the rule body carry ids from the definition's
// independently-numbered token map, which would otherwise alias the
// argument map's ids (both typically start at 0). Shifting only the Def
// side unifies the two into the one id space the expansion map (ExpMap)
// is built in.
//
// Non-declarative expanders report Origin::Call for everything, so this
// is a no-op for them — shift only ever does work on a Declarative's
// output, matching spec.md §4.F: "For all other expanders, origin is
// always Call."
func rewriteDefOrigins(sub *tt.Subtree, expander macrodef.Expander, shift tokenmap.Shift) {
	var walk func(*tt.Subtree)
	walk = func(s *tt.Subtree) {
		if s.Id != tt.NoTokenId {
			if _, origin := expander.MapIDUp(s.Id); origin == macrodef.OriginDef {
				s.Id = shift.Apply(s.Id)
			}
		}
		for _, child := range s.TokenTrees {
			switch v := child.(type) {
			case *tt.Leaf:
				if v.Id != tt.NoTokenId {
					if _, origin := expander.MapIDUp(v.Id); origin == macrodef.OriginDef {
						v.Id = shift.Apply(v.Id)
					}
				}
			case *tt.Subtree:
				walk(v)
			}
		}
	}
	walk(sub)
}

// MapTokenDown implements spec.md §4.G "Map-token-down": given a token
// in the call's argument file (or, for attribute calls, optionally
// inside the attributed item's attribute list), find every token in the
// expansion that token maps to.
func (e *Engine) MapTokenDown(info *ExpansionInfo, rng common.TextRange, kind tokenmap.SyntaxKind) ([]common.TextRange, error) {
	argId, ok := info.MacroArgMap.TokenByRange(rng)
	if !ok {
		return nil, fmt.Errorf("expand: no token at range %v in the macro argument", rng)
	}
	mapped := info.MacroDef.MapIDDown(argId)
	return info.ExpMap.RangesByTokenAndKind(mapped, kind), nil
}

// MapTokenUp implements spec.md §4.G "Map-token-up": given a token in
// the expanded tree, recover the call-site (or def-site) token, the
// Origin it came from, and — for attribute calls — whether it came from
// the attribute's own argument rather than the attributed item's body.
//
// For attribute calls the id-space merge in assembleInput means a
// successful un-shift through AttrArgsShift identifies an attribute-arg
// token; otherwise the id is the item's own, unshifted (spec.md §4.G
// "Map-token-up", Attr branch; §8 "Attribute id-space", Scenario 4).
//
// It panics if an expander other than *macrodef.Declarative reports
// Origin::Def.
func (e *Engine) MapTokenUp(info *ExpansionInfo, rng common.TextRange) (id tt.TokenId, origin macrodef.Origin, fromDef bool, fromAttrArgs bool, err error) {
	expId, ok := info.ExpMap.TokenByRange(rng)
	if !ok {
		return 0, macrodef.OriginCall, false, false, fmt.Errorf("expand: no token at range %v in the expansion", rng)
	}

	if defId, ok := info.MacroArgShift.Unapply(expId); ok && info.MacroDef != nil {
		if _, o := info.MacroDef.MapIDUp(defId); o == macrodef.OriginDef {
			if _, isDecl := info.MacroDef.(*macrodef.Declarative); !isDecl {
				panic(fmt.Sprintf("expand: non-declarative expander %T reported Origin::Def", info.MacroDef))
			}
			return defId, macrodef.OriginDef, true, false, nil
		}
	}

	if info.HasAttrArgs {
		if attrId, ok := info.AttrArgsShift.Unapply(expId); ok {
			return attrId, macrodef.OriginCall, false, true, nil
		}
	}

	callId, o := info.MacroDef.MapIDUp(expId)
	if _, isDecl := info.MacroDef.(*macrodef.Declarative); o == macrodef.OriginDef && !isDecl {
		panic(fmt.Sprintf("expand: non-declarative expander %T reported Origin::Def", info.MacroDef))
	}
	return callId, o, false, false, nil
}
