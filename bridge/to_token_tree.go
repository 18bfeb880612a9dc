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

// Package bridge implements spec.md's component E, the token-tree
// bridge: the two conversions, syntax tree -> token tree and back, that
// must both preserve token identity exactly (spec.md §4.E). It is
// grounded directly on the structure of the original's
// mbe/syntax_bridge.rs: a single explicit-stack pass for the forward
// direction, and a token-source-driven parse for the reverse.
package bridge

import (
	"github.com/macrohost/hirexpand/common"
	"github.com/macrohost/hirexpand/syntax"
	"github.com/macrohost/hirexpand/tokenmap"
	"github.com/macrohost/hirexpand/tt"
)

// Censor is the set of syntax nodes to omit wholesale from the
// conversion (spec.md's "Censor"), used when converting an attributed
// item without re-emitting the triggering attribute.
type Censor map[*syntax.Node]bool

// kindOf maps a syntax.Kind to the tokenmap.SyntaxKind tag recorded
// alongside each leaf's range, so later lookups can disambiguate
// same-text tokens of different grammatical roles.
func kindOf(k syntax.Kind) tokenmap.SyntaxKind { return tokenmap.SyntaxKind(k) }

// SyntaxToTokenTree converts root into a token tree, recording every
// leaf and delimiter pair's range in the returned TokenMap. censor may
// be nil. This implements spec.md §4.E "Syntax -> token-tree" in full:
// doc-comment synthesis, punct spacing, lifetime splitting, delimiter
// stack with unmatched-closer and unterminated-subtree recovery, and the
// single/nested-subtree result collapse.
func SyntaxToTokenTree(root *syntax.Node, censor Censor) (*tt.Subtree, *tokenmap.TokenMap) {
	toks := flatten(root, censor)
	b := tokenmap.NewBuilder()

	type frame struct {
		sub   *tt.Subtree
		delim tt.DelimiterKind
		open  common.TextRange
		id    tt.TokenId
	}
	rootSub := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	stack := []*frame{{sub: rootSub}}

	for i, t := range toks {
		if t.Kind.IsTrivia() {
			continue
		}
		top := stack[len(stack)-1]

		if t.Kind == syntax.DOC_COMMENT {
			emitDocComment(b, top.sub, t)
			continue
		}

		if t.Kind == syntax.LIFETIME_IDENT {
			emitLifetime(b, top.sub, t)
			continue
		}

		if t.Kind == syntax.PUNCT {
			switch t.Text {
			case "(", "{", "[":
				delim := delimKindOf(t.Text)
				// The id is allocated when the pair closes (or is
				// flattened at EOF); record the open range now so
				// AllocDelimiter has both ends together.
				stack = append(stack, &frame{
					sub:   tt.NewSubtree(delim, tt.NoTokenId),
					delim: delim,
					open:  t.Rng,
				})
				continue
			case ")", "}", "]":
				if len(stack) > 1 && stack[len(stack)-1].delim == delimKindOf(matchingOpen(t.Text)) {
					f := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					id := b.AllocDelimiter(f.open, t.Rng, true)
					f.sub.Id = id
					stack[len(stack)-1].sub.Push(f.sub)
				}
				// Unmatched closers are ignored entirely (spec.md
				// §4.E): no pop, no emission.
				continue
			}
			spacing := puncSpacing(toks, i)
			id := b.AllocLeaf(t.Rng, kindOf(t.Kind))
			top.sub.Push(tt.NewPunct(t.Text[0], spacing, id))
			continue
		}

		// IDENT, INT_NUMBER, STRING and anything else ordinary.
		id := b.AllocLeaf(t.Rng, kindOf(t.Kind))
		if t.Kind == syntax.IDENT {
			top.sub.Push(tt.NewIdent(t.Text, id))
		} else {
			top.sub.Push(tt.NewLiteral(t.Text, id))
		}
	}

	// Recovery: any still-open subtrees at end-of-input are flattened
	// by re-emitting their opener as a punct leaf and concatenating
	// their contents into the parent (spec.md §4.E, Scenario 6).
	for len(stack) > 1 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f.sub.Id = b.AllocDelimiter(f.open, common.TextRange{}, false)
		f.sub.FlattenInto(stack[len(stack)-1].sub)
	}

	return tt.Collapse(rootSub), b.Build()
}

func delimKindOf(open string) tt.DelimiterKind {
	switch open {
	case "(":
		return tt.DelimParen
	case "{":
		return tt.DelimBrace
	case "[":
		return tt.DelimBracket
	default:
		return tt.DelimNone
	}
}

func matchingOpen(closer string) string {
	switch closer {
	case ")":
		return "("
	case "}":
		return "{"
	case "]":
		return "["
	default:
		return ""
	}
}

// flatten collects root's tokens in source order, omitting anything
// rooted under a censored node.
func flatten(root *syntax.Node, censor Censor) []*syntax.Token {
	var out []*syntax.Token
	var walk func(e syntax.Element)
	walk = func(e syntax.Element) {
		switch v := e.(type) {
		case *syntax.Token:
			out = append(out, v)
		case *syntax.Node:
			if censor != nil && censor[v] {
				return
			}
			for _, c := range v.Children {
				walk(c)
			}
		}
	}
	walk(root)
	return out
}

// puncSpacing looks at the next non-trivia token after toks[i] to decide
// joint vs. alone (spec.md §4.E): joint only if that token is itself a
// punct (not "_") immediately adjacent with no intervening trivia.
func puncSpacing(toks []*syntax.Token, i int) tt.Spacing {
	cur := toks[i]
	for j := i + 1; j < len(toks); j++ {
		next := toks[j]
		if next.Kind.IsTrivia() {
			return tt.Alone
		}
		if next.Kind == syntax.PUNCT && next.Text != "_" && next.Rng.Start == cur.Rng.End {
			return tt.Joint
		}
		return tt.Alone
	}
	return tt.Alone
}

// emitDocComment synthesizes a #[doc="..."] attribute token tree for a
// doc comment, reassigning the literal's id to the comment's own token
// id so diagnostics on the comment can be recovered later (spec.md
// §4.E).
func emitDocComment(b *tokenmap.Builder, into *tt.Subtree, t *syntax.Token) {
	commentId := b.AllocLeaf(t.Rng, kindOf(syntax.DOC_COMMENT))
	into.Push(tt.NewPunct('#', tt.Joint, commentId))
	bracket := tt.NewSubtree(tt.DelimBracket, commentId)
	bracket.Push(tt.NewIdent("doc", commentId))
	bracket.Push(tt.NewPunct('=', tt.Alone, commentId))
	bracket.Push(tt.NewLiteral(docText(t.Text), commentId))
	into.Push(bracket)
}

func docText(raw string) string {
	// Strip a leading "///" or "//!" doc-comment marker; real comment
	// grammars vary, this is deliberately tolerant.
	s := raw
	for len(s) > 0 && (s[0] == '/' || s[0] == '!') {
		s = s[1:]
	}
	return `"` + s + `"`
}

// emitLifetime splits a lifetime token ("'a") into an apostrophe punct
// and an identifier leaf with their own sub-ranges, so downstream
// tooling sees the same two-token view the grammar does (spec.md
// §4.E).
func emitLifetime(b *tokenmap.Builder, into *tt.Subtree, t *syntax.Token) {
	quoteRng := common.TextRange{Start: t.Rng.Start, End: t.Rng.Start + 1}
	nameRng := common.TextRange{Start: t.Rng.Start + 1, End: t.Rng.End}
	quoteId := b.AllocLeaf(quoteRng, kindOf(syntax.LIFETIME_IDENT))
	nameId := b.AllocLeaf(nameRng, kindOf(syntax.LIFETIME_IDENT))
	into.Push(tt.NewPunct('\'', tt.Joint, quoteId))
	into.Push(tt.NewIdent(t.Text[1:], nameId))
}
