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
	"github.com/macrohost/hirexpand/expanderr"
	"github.com/macrohost/hirexpand/tokenmap"
	"github.com/macrohost/hirexpand/tt"
)

// Rule is one arm of a macro_rules!-style declarative macro: match input
// structurally against Pattern, then replay Body with metavariables
// substituted by what matched.
type Rule struct {
	Pattern *tt.Subtree
	Body    *tt.Subtree
}

// Declarative is the spec.md §4.F "deterministic match-and-substitute"
// expander. Every leaf token appearing in a rule's Body but not bound to
// a captured input fragment is a "def-site" token: its TokenId is one
// DefMap already knows about (assigned when the macro's defining item
// was converted to a token tree, the same way any other syntax was), so
// map_id_up can recognize it and report Origin::Def (spec.md §4.F).
type Declarative struct {
	Rules []Rule
	// DefMap is the token map built while converting the macro_rules!
	// definition's own source (its rule bodies) to token trees. Any id
	// DefMap recognizes originates in the macro's body, not a caller's
	// input — that membership is exactly what MapIDUp needs to decide
	// Origin, and DefMap itself is what a caller resolves an
	// Origin::Def id's range against afterward (spec.md §4.G
	// "Map-token-up": "for Origin::Def, look up in the expander's
	// def-site map").
	DefMap *tokenmap.TokenMap
}

// NewDeclarative builds a Declarative expander from its rules and the
// token map recorded while the definition itself was converted to
// token trees (package bridge).
func NewDeclarative(rules []Rule, defMap *tokenmap.TokenMap) *Declarative {
	return &Declarative{Rules: rules, DefMap: defMap}
}

func (d *Declarative) MapIDDown(id tt.TokenId) tt.TokenId { return id }

func (d *Declarative) MapIDUp(id tt.TokenId) (tt.TokenId, Origin) {
	if d.DefMap != nil && d.DefMap.RangeByToken(id) != nil {
		return id, OriginDef
	}
	return id, OriginCall
}

// Expand tries each rule in order (macro_rules! "first match wins") and
// substitutes the first whose pattern matches input. attrInput is unused
// by declarative macros; a non-nil value is simply ignored since only
// attribute expanders consume it.
func (d *Declarative) Expand(input *tt.Subtree, _ *tt.Subtree) expanderr.ExpandResult[*tt.Subtree] {
	for _, rule := range d.Rules {
		if b, ok := match(rule.Pattern.TokenTrees, input.TokenTrees); ok {
			out := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
			substitute(rule.Body.TokenTrees, b, out)
			return expanderr.ExpandResult[*tt.Subtree]{Value: tt.Collapse(out)}
		}
	}
	return expanderr.ExpandResult[*tt.Subtree]{
		Err: expanderr.NewOther("no rule of this declarative macro matched its input"),
	}
}

// binding holds what a metavariable or a repetition group captured.
// Exactly one of the two slices is meaningful for a given binding use:
// single-capture metavariables set frag (len 1); a $(...)* group sets
// reps, one entry per repetition, each itself a name->binding map for
// the variables the repeated subpattern declared.
type binding struct {
	frag []tt.TokenTree
	reps []map[string]binding
}

// match attempts to consume all of pattern against all of input,
// returning the captured metavariable bindings on success.
func match(pattern, input []tt.TokenTree) (map[string]binding, bool) {
	b := make(map[string]binding)
	pi, ii := 0, 0
	for pi < len(pattern) {
		if name, kind, consumed := metaVarAt(pattern, pi); consumed > 0 {
			_ = kind
			if ii >= len(input) {
				return nil, false
			}
			b[name] = binding{frag: []tt.TokenTree{input[ii]}}
			pi += consumed
			ii++
			continue
		}
		if sub, sep, op, consumed := repetitionAt(pattern, pi); consumed > 0 {
			reps, newIi, ok := matchRepetition(sub, sep, op, input, ii)
			if !ok {
				return nil, false
			}
			// Surface each captured variable inside the repetition as a
			// binding whose reps field carries one entry per iteration,
			// keyed the same way the inner match did.
			for varName := range collectVarNames(sub) {
				b[varName] = binding{reps: reps}
			}
			pi += consumed
			ii = newIi
			continue
		}
		// Plain token: must match input literally.
		if ii >= len(input) || !tokenTreeEqualShape(pattern[pi], input[ii]) {
			return nil, false
		}
		pi++
		ii++
	}
	return b, ii == len(input)
}

// matchRepetition greedily matches as many copies of sub (each preceded
// by sep, except the first) against input starting at ii as it can,
// honoring op's cardinality (* allows zero, + requires at least one, ?
// allows at most one).
func matchRepetition(sub []tt.TokenTree, sep tt.TokenTree, op byte, input []tt.TokenTree, ii int) ([]map[string]binding, int, bool) {
	var reps []map[string]binding
	for op != '?' || len(reps) == 0 {
		start := ii
		// Consume a separator before every repetition after the first.
		if len(reps) > 0 && sep != nil {
			if ii >= len(input) || !tokenTreeEqualShape(sep, input[ii]) {
				break
			}
			ii++
		}
		// Try matching one copy of sub against a single upcoming
		// element; a repeated subpattern in this token-tree-level
		// matcher captures exactly one input element per metavariable,
		// same as a top-level match.
		innerBinding, ok := matchOneRepetitionBody(sub, input, &ii)
		if !ok {
			ii = start
			break
		}
		reps = append(reps, innerBinding)
		if op == '?' {
			break
		}
	}
	if op == '+' && len(reps) == 0 {
		return nil, ii, false
	}
	return reps, ii, true
}

// matchOneRepetitionBody matches sub (a repetition's inner pattern)
// against input starting at *ii, advancing *ii past what it consumed.
func matchOneRepetitionBody(sub []tt.TokenTree, input []tt.TokenTree, ii *int) (map[string]binding, bool) {
	b := make(map[string]binding)
	si := 0
	for si < len(sub) {
		if name, _, consumed := metaVarAt(sub, si); consumed > 0 {
			if *ii >= len(input) {
				return nil, false
			}
			b[name] = binding{frag: []tt.TokenTree{input[*ii]}}
			si += consumed
			*ii++
			continue
		}
		if *ii >= len(input) || !tokenTreeEqualShape(sub[si], input[*ii]) {
			return nil, false
		}
		si++
		*ii++
	}
	return b, true
}

// metaVarAt reports whether pattern[i:] begins a $name or $name:kind
// metavariable, returning its name, declared fragment kind (empty if
// none given), and how many pattern elements it spans.
func metaVarAt(pattern []tt.TokenTree, i int) (name, kind string, consumed int) {
	dollar, ok := pattern[i].(*tt.Leaf)
	if !ok || dollar.Kind != tt.LeafPunct || dollar.Text != "$" {
		return "", "", 0
	}
	if i+1 >= len(pattern) {
		return "", "", 0
	}
	nameLeaf, ok := pattern[i+1].(*tt.Leaf)
	if !ok || nameLeaf.Kind != tt.LeafIdent {
		return "", "", 0
	}
	consumed = 2
	if i+3 < len(pattern) {
		if colon, ok := pattern[i+2].(*tt.Leaf); ok && colon.Kind == tt.LeafPunct && colon.Text == ":" {
			if kindLeaf, ok := pattern[i+3].(*tt.Leaf); ok && kindLeaf.Kind == tt.LeafIdent {
				return nameLeaf.Text, kindLeaf.Text, 4
			}
		}
	}
	return nameLeaf.Text, "", consumed
}

// repetitionAt reports whether pattern[i:] begins a $( ... )sep?op
// repetition group, returning the inner subpattern, the separator
// token (nil if none), the cardinality op byte ('*', '+', or '?'), and
// how many pattern elements the whole group spans.
func repetitionAt(pattern []tt.TokenTree, i int) (sub []tt.TokenTree, sep tt.TokenTree, op byte, consumed int) {
	dollar, ok := pattern[i].(*tt.Leaf)
	if !ok || dollar.Kind != tt.LeafPunct || dollar.Text != "$" {
		return nil, nil, 0, 0
	}
	if i+1 >= len(pattern) {
		return nil, nil, 0, 0
	}
	group, ok := pattern[i+1].(*tt.Subtree)
	if !ok || group.Delimiter != tt.DelimParen {
		return nil, nil, 0, 0
	}
	j := i + 2
	if j < len(pattern) {
		if opLeaf, ok := pattern[j].(*tt.Leaf); ok && opLeaf.Kind == tt.LeafPunct && isRepOp(opLeaf.Text) {
			return group.TokenTrees, nil, opLeaf.Text[0], j - i + 1
		}
	}
	if j+1 < len(pattern) {
		if opLeaf, ok := pattern[j+1].(*tt.Leaf); ok && opLeaf.Kind == tt.LeafPunct && isRepOp(opLeaf.Text) {
			return group.TokenTrees, pattern[j], opLeaf.Text[0], j + 2 - i
		}
	}
	return nil, nil, 0, 0
}

func isRepOp(s string) bool { return s == "*" || s == "+" || s == "?" }

// collectVarNames gathers every metavariable name a repetition's inner
// pattern declares, at the top level only (nested repetitions within a
// repetition are out of scope for this token-tree-level matcher).
func collectVarNames(sub []tt.TokenTree) map[string]bool {
	names := make(map[string]bool)
	for i := 0; i < len(sub); i++ {
		if name, _, consumed := metaVarAt(sub, i); consumed > 0 {
			names[name] = true
			i += consumed - 1
		}
	}
	return names
}

// tokenTreeEqualShape compares two token trees for the structural
// equality a literal pattern token requires: same leaf kind and text, or
// recursively equal subtrees. Spacing and TokenId are identity, not
// shape, and are deliberately ignored.
func tokenTreeEqualShape(a, b tt.TokenTree) bool {
	switch av := a.(type) {
	case *tt.Leaf:
		bv, ok := b.(*tt.Leaf)
		return ok && av.Kind == bv.Kind && av.Text == bv.Text
	case *tt.Subtree:
		bv, ok := b.(*tt.Subtree)
		if !ok || av.Delimiter != bv.Delimiter || len(av.TokenTrees) != len(bv.TokenTrees) {
			return false
		}
		for i := range av.TokenTrees {
			if !tokenTreeEqualShape(av.TokenTrees[i], bv.TokenTrees[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// substitute replays body into out, replacing every metavariable with
// its bound fragment and every repetition group with one copy of its
// inner body per captured repetition, separated by copies of the
// group's separator token.
func substitute(body []tt.TokenTree, b map[string]binding, out *tt.Subtree) {
	for i := 0; i < len(body); i++ {
		if name, _, consumed := metaVarAt(body, i); consumed > 0 {
			if bound, ok := b[name]; ok {
				out.TokenTrees = append(out.TokenTrees, bound.frag...)
			}
			i += consumed - 1
			continue
		}
		if sub, sep, _, consumed := repetitionAt(body, i); consumed > 0 {
			varNames := collectVarNames(sub)
			reps := repsFor(varNames, b)
			for r, rep := range reps {
				if r > 0 && sep != nil {
					out.Push(sep)
				}
				substitute(sub, rep, out)
			}
			i += consumed - 1
			continue
		}
		switch v := body[i].(type) {
		case *tt.Subtree:
			inner := tt.NewSubtree(v.Delimiter, v.Id)
			substitute(v.TokenTrees, b, inner)
			out.Push(inner)
		default:
			out.Push(v)
		}
	}
}

// repsFor recovers the per-iteration binding maps a repetition group
// produced during matching, keyed by any one of its variable names
// (they all carry identical reps slices by construction in match).
func repsFor(varNames map[string]bool, b map[string]binding) []map[string]binding {
	for name := range varNames {
		if bound, ok := b[name]; ok && bound.reps != nil {
			return bound.reps
		}
	}
	return nil
}
