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

// Package ascend implements spec.md's component H, range ascension: the
// procedure that recovers "where in real source did this bit of
// macro-generated syntax ultimately come from", climbing out through as
// many levels of expansion as it takes to reach a real file. It is the
// component diagnostics and "go to definition"-style tooling actually
// consume; every other component exists to make this one answerable.
package ascend

import (
	"github.com/macrohost/hirexpand/common"
	"github.com/macrohost/hirexpand/expand"
	"github.com/macrohost/hirexpand/hirfile"
	"github.com/macrohost/hirexpand/macrodef"
	"github.com/macrohost/hirexpand/syntax"
	"github.com/macrohost/hirexpand/tokenmap"
	"github.com/macrohost/hirexpand/tt"
)

// Result is what Ascend returns: the real file and range the query
// ultimately resolved to, or ok=false if N turned out to live entirely
// inside macro-synthesized syntax with no call-site origin (spec.md
// §4.H step 5's "Origin::Def" stop condition).
type Result struct {
	File  common.FileId
	Range common.TextRange
}

// Ascend implements spec.md §4.H in full for a syntax node n inside
// virtual file f.
func Ascend(e *expand.Engine, f hirfile.HirFileId, n *syntax.Node) (Result, bool) {
	for {
		if !f.IsMacro() {
			return Result{File: f.Real, Range: n.Range()}, true
		}

		info, err := e.ExpansionInfo(f.Macro)
		if err != nil {
			return Result{}, false
		}

		rng, stopAtDef, ok := ascendOneLevel(e, info, n)
		if stopAtDef {
			return Result{}, false
		}
		if !ok {
			return wholeCallFallback(e, info.Loc)
		}

		parentFile := hirfile.ParentFile(info.Loc)
		parentRoot, err := e.ParseOrExpand(parentFile)
		if err != nil {
			return Result{}, false
		}
		parentNode := nodeCovering(parentRoot, rng)
		if parentNode == nil {
			if !parentFile.IsMacro() {
				return Result{File: parentFile.Real, Range: rng}, true
			}
			parentNode = &syntax.Node{Kind: syntax.TOKEN_TREE}
		}
		f, n = parentFile, parentNode
	}
}

// ascendOneLevel implements spec.md §4.H steps 3-4: find n's first and
// last non-trivia tokens, map both up through info, and require they
// land at the same parent file without collapsing a multi-token node
// into a single atom.
func ascendOneLevel(e *expand.Engine, info *expand.ExpansionInfo, n *syntax.Node) (rng common.TextRange, stopAtDef, ok bool) {
	toks := n.NonTriviaTokens()
	if len(toks) == 0 {
		return common.TextRange{}, false, false
	}
	first, last := toks[0], toks[len(toks)-1]

	firstId, firstOrigin, _, firstFromAttr, ferr := e.MapTokenUp(info, first.Rng)
	if ferr != nil {
		return common.TextRange{}, false, false
	}
	lastId, lastOrigin, _, lastFromAttr, lerr := e.MapTokenUp(info, last.Rng)
	if lerr != nil {
		return common.TextRange{}, false, false
	}
	if firstOrigin == macrodef.OriginDef || lastOrigin == macrodef.OriginDef {
		return common.TextRange{}, true, true
	}

	firstRng, fok := rangeFor(info, firstId, firstFromAttr)
	lastRng, lok := rangeFor(info, lastId, lastFromAttr)
	if !fok || !lok {
		return common.TextRange{}, false, false
	}
	if len(toks) > 1 && firstRng == lastRng {
		// Collapsed to a single token: the expansion folded a
		// multi-token node into one atom, which ascension must refuse
		// (spec.md §4.H step 4).
		return common.TextRange{}, false, false
	}
	return firstRng.Cover(lastRng), false, true
}

// rangeFor resolves a mapped-up token id to its source range, reading
// from the attribute's own argument map when fromAttrArgs is set (the
// id there is un-shifted, local to that map — spec.md §4.G "Map-token-up",
// Attr branch) and from the call's merged input map otherwise.
func rangeFor(info *expand.ExpansionInfo, id tt.TokenId, fromAttrArgs bool) (common.TextRange, bool) {
	if fromAttrArgs {
		return info.Loc.Kind.AttrArgsMap.FirstRangeByToken(id, tokenmap.AnyKind)
	}
	return info.MacroArgMap.FirstRangeByToken(id, tokenmap.AnyKind)
}

// wholeCallFallback implements spec.md §4.H step 6: walk up through
// parent call nodes to whole-call granularity and return the call's
// range in the first real ancestor.
func wholeCallFallback(e *expand.Engine, loc hirfile.MacroCallLoc) (Result, bool) {
	file, idx := hirfile.CallSiteNodeRef(loc.Kind)
	am, err := e.DB.AstIdMap(file)
	if err != nil {
		return Result{}, false
	}
	node, ok := am.NodeAt(idx)
	if !ok {
		return Result{}, false
	}
	return Ascend(e, file, node)
}

// nodeCovering finds the innermost node in root whose range contains
// rng. Returns nil if no node does. Ascend then returns rng itself when
// the parent file is real; in an expansion parent it substitutes an
// empty placeholder node, which has no tokens, so the next level falls
// back to the whole-call range.
func nodeCovering(root *syntax.Node, rng common.TextRange) *syntax.Node {
	if root == nil {
		return nil
	}
	var best *syntax.Node
	var walk func(n *syntax.Node)
	walk = func(n *syntax.Node) {
		if !n.Range().ContainsRange(rng) {
			return
		}
		best = n
		for _, c := range n.Children {
			if child, ok := c.(*syntax.Node); ok {
				walk(child)
			}
		}
	}
	walk(root)
	return best
}
