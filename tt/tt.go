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

// Package tt defines the token-tree exchange format used between the
// token-tree bridge, the macro-def registry's expanders, and the
// out-of-process procedural-macro wire surface. A token tree is a
// balanced tree of tokens grouped by matching delimiters: the form every
// macro expander (declarative, built-in, or procedural) both consumes
// and produces.
package tt

// TokenId identifies a single leaf token or delimiter pair within exactly
// one TokenMap (see package tokenmap). It is meaningless outside that map.
type TokenId uint32

// NoTokenId marks the absence of an id, e.g. for synthesized leaves that
// carry no source identity at all.
const NoTokenId TokenId = 1<<32 - 1

// DelimiterKind is the kind of a paired delimiter.
type DelimiterKind int

const (
	// DelimNone denotes an implicit grouping with no surface syntax
	// (e.g. the root of a token tree).
	DelimNone DelimiterKind = iota
	DelimParen
	DelimBrace
	DelimBracket
)

func (d DelimiterKind) Open() string {
	switch d {
	case DelimParen:
		return "("
	case DelimBrace:
		return "{"
	case DelimBracket:
		return "["
	default:
		return ""
	}
}

func (d DelimiterKind) Close() string {
	switch d {
	case DelimParen:
		return ")"
	case DelimBrace:
		return "}"
	case DelimBracket:
		return "]"
	default:
		return ""
	}
}

// Spacing records whether a punct leaf is immediately followed by another
// punct character with no separating whitespace ("joint"), which is
// semantically significant per spec.md §4.E: downstream re-tokenization
// must know whether "<" "=" were written as "<=" or "< =".
type Spacing int

const (
	Alone Spacing = iota
	Joint
)

// LeafKind distinguishes the three leaf token shapes a tree can hold.
type LeafKind int

const (
	LeafIdent LeafKind = iota
	LeafLiteral
	LeafPunct
)

// TokenTree is any node of a token tree: either a Leaf or a Subtree.
type TokenTree interface {
	isTokenTree()
}

// Leaf is a single non-delimiter token: an identifier, a literal, or one
// punctuation character.
type Leaf struct {
	Kind LeafKind
	// Text is the leaf's textual form. For LeafPunct this is always a
	// single character.
	Text string
	// Spacing is meaningful only for LeafPunct.
	Spacing Spacing
	// Id identifies this leaf in its owning TokenMap.
	Id TokenId
}

func (*Leaf) isTokenTree() {}

// NewIdent builds an identifier leaf.
func NewIdent(text string, id TokenId) *Leaf {
	return &Leaf{Kind: LeafIdent, Text: text, Id: id}
}

// NewLiteral builds a literal leaf (numbers, strings, chars, ...).
func NewLiteral(text string, id TokenId) *Leaf {
	return &Leaf{Kind: LeafLiteral, Text: text, Id: id}
}

// NewPunct builds a single-character punctuation leaf.
func NewPunct(ch byte, spacing Spacing, id TokenId) *Leaf {
	return &Leaf{Kind: LeafPunct, Text: string(ch), Spacing: spacing, Id: id}
}

// Subtree is a delimited (or, at the root, undelimited) sequence of
// token trees. Its Id identifies the delimiter pair as a whole in its
// owning TokenMap; leaves inside TokenTrees have their own, independent
// ids in the same map.
type Subtree struct {
	Delimiter DelimiterKind
	// Id is NoTokenId for the implicit root subtree, which has no
	// surface delimiter to identify.
	Id         TokenId
	TokenTrees []TokenTree
}

func (*Subtree) isTokenTree() {}

// NewSubtree builds an empty subtree with the given delimiter and id.
func NewSubtree(delim DelimiterKind, id TokenId) *Subtree {
	return &Subtree{Delimiter: delim, Id: id, TokenTrees: nil}
}

// Push appends a child token tree.
func (s *Subtree) Push(t TokenTree) {
	s.TokenTrees = append(s.TokenTrees, t)
}

// FlattenInto re-emits the subtree's opening delimiter as a punct leaf
// (if it has one) and appends all of its children directly into dst. This
// is the recovery path used when an opening delimiter is never closed
// (spec.md §4.E, Scenario 6): rather than drop the unterminated content,
// the bridge flattens it into the parent so no tokens are lost.
func (s *Subtree) FlattenInto(dst *Subtree) {
	if open := s.Delimiter.Open(); open != "" {
		dst.Push(NewPunct(open[0], Alone, s.Id))
	}
	dst.TokenTrees = append(dst.TokenTrees, s.TokenTrees...)
}

// Collapse implements the "result collapse" rule of spec.md §4.E: if the
// root subtree has exactly one child and that child is itself a subtree,
// return the child; otherwise return root unchanged.
func Collapse(root *Subtree) *Subtree {
	if len(root.TokenTrees) == 1 {
		if child, ok := root.TokenTrees[0].(*Subtree); ok {
			return child
		}
	}
	return root
}
