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

package bridge

import (
	"strings"

	"github.com/macrohost/hirexpand/common"
	"github.com/macrohost/hirexpand/expanderr"
	"github.com/macrohost/hirexpand/syntax"
	"github.com/macrohost/hirexpand/tokenmap"
	"github.com/macrohost/hirexpand/tt"
)

// TokenTreeToSyntax implements spec.md §4.E's reverse direction: it
// drives a (here, structural rather than grammar-table-driven) parse
// over sub, synthesizing fresh source text as it goes and recording, in
// the returned TokenMap, the range each of sub's leaves and delimiter
// pairs ends up at in that text.
//
// Crucially this does NOT allocate new TokenIds: every leaf and
// delimiter in sub already carries the id its producer (an expander, or
// a prior call to SyntaxToTokenTree) assigned, and this function's job
// is only to say where that id's token landed in the synthesized text
// (spec.md §4.G "exp_map": "for every token id in the expansion map
// there exists at most one corresponding id in the input map").
//
// rootKind labels the synthesized root node (callers pick it from the
// macro call's inferred ExpandTo); it carries no other meaning here.
func TokenTreeToSyntax(sub *tt.Subtree, rootKind syntax.Kind) (*syntax.Node, *tokenmap.TokenMap, string, error) {
	if sub == nil {
		return nil, nil, "", expanderr.NewConversionError("nil input subtree")
	}
	c := &converter{b: tokenmap.NewBuilder()}
	root, _, _, _ := c.convert(sub)
	root.Kind = rootKind
	// By construction, convert always produces exactly one node from
	// one subtree; the "exactly one root" invariant spec.md §4.E checks
	// at finish is a property of a table-driven grammar parser, where
	// the parse could in principle emit zero or multiple top-level
	// trees. This direct structural conversion can't: there's nothing
	// further to validate.
	return root, c.b.Build(), c.text.String(), nil
}

type converter struct {
	b    *tokenmap.Builder
	text strings.Builder
	// lastWasAlonePunct/lastPunctText track the most recently emitted leaf's
	// spacing so the whitespace rule can look one token back.
	lastWasAlonePunct bool
	lastPunctText     string
	lastWasWordy      bool // ident/literal, to avoid gluing "foo""bar"
}

func (c *converter) emit(s string) common.TextRange {
	start := common.TextSize(c.text.Len())
	c.text.WriteString(s)
	return common.TextRange{Start: start, End: common.TextSize(c.text.Len())}
}

func (c *converter) maybeSpace(nextIsWordy bool) {
	if c.lastWasAlonePunct && c.lastPunctText != ";" {
		c.text.WriteString(" ")
	} else if c.lastWasWordy && nextIsWordy {
		c.text.WriteString(" ")
	}
}

// convert returns the built node, and (if sub had a real delimiter) the
// open/close ranges so the caller can record the delimiter pair's id.
func (c *converter) convert(sub *tt.Subtree) (node *syntax.Node, open, close common.TextRange, hasDelim bool) {
	node = &syntax.Node{Kind: syntax.TOKEN_TREE}

	if openStr := sub.Delimiter.Open(); openStr != "" {
		c.maybeSpace(false)
		open = c.emit(openStr)
		node.Push(&syntax.Token{Kind: syntax.PUNCT, Text: openStr, Rng: open})
		c.lastWasAlonePunct = false
		c.lastWasWordy = false
		hasDelim = true
	}

	children := sub.TokenTrees
	for i := 0; i < len(children); i++ {
		switch v := children[i].(type) {
		case *tt.Subtree:
			childNode, co, cc, childHasDelim := c.convert(v)
			if childHasDelim {
				c.b.SetDelimiterRange(v.Id, co, cc, true)
			}
			node.Push(childNode)
			c.lastWasAlonePunct = false
			c.lastWasWordy = false
		case *tt.Leaf:
			// Lifetime rejoin: an "alone"-less apostrophe immediately
			// followed by an identifier leaf is reconstructed as one
			// LIFETIME_IDENT token (spec.md §4.E "lifetime is two
			// consecutive tokens on the input side").
			if v.Kind == tt.LeafPunct && v.Text == "'" && v.Spacing == tt.Joint && i+1 < len(children) {
				if nameLeaf, ok := children[i+1].(*tt.Leaf); ok && nameLeaf.Kind == tt.LeafIdent {
					c.maybeSpace(false)
					quoteRng := c.emit("'")
					nameRng := c.emit(nameLeaf.Text)
					c.b.SetLeafRange(v.Id, quoteRng, tokenmap.SyntaxKind(syntax.LIFETIME_IDENT))
					c.b.SetLeafRange(nameLeaf.Id, nameRng, tokenmap.SyntaxKind(syntax.LIFETIME_IDENT))
					full := common.TextRange{Start: quoteRng.Start, End: nameRng.End}
					node.Push(&syntax.Token{Kind: syntax.LIFETIME_IDENT, Text: "'" + nameLeaf.Text, Rng: full})
					c.lastWasAlonePunct = false
					c.lastWasWordy = false
					i++ // consumed the ident too
					continue
				}
			}

			wordy := v.Kind == tt.LeafIdent || v.Kind == tt.LeafLiteral
			c.maybeSpace(wordy)
			rng := c.emit(v.Text)
			kind := syntaxKindFor(v)
			c.b.SetLeafRange(v.Id, rng, tokenmap.SyntaxKind(kind))
			node.Push(&syntax.Token{Kind: kind, Text: v.Text, Rng: rng})

			c.lastWasWordy = wordy
			c.lastWasAlonePunct = v.Kind == tt.LeafPunct && v.Spacing == tt.Alone
			c.lastPunctText = v.Text
		}
	}

	if closeStr := sub.Delimiter.Close(); closeStr != "" {
		close = c.emit(closeStr)
		node.Push(&syntax.Token{Kind: syntax.PUNCT, Text: closeStr, Rng: close})
		c.lastWasAlonePunct = false
		c.lastWasWordy = false
	}

	return node, open, close, hasDelim
}

func syntaxKindFor(l *tt.Leaf) syntax.Kind {
	switch l.Kind {
	case tt.LeafIdent:
		return syntax.IDENT
	case tt.LeafLiteral:
		return syntax.STRING
	default:
		return syntax.PUNCT
	}
}
