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

// Package syntax stands in for the collaborator spec.md §1 calls "assumed
// ... a red-green tree with offset-preserving tokens": a minimal,
// concrete syntax tree just complete enough to drive the token-tree
// bridge and range ascension. Name resolution, type inference, and a
// real parser/grammar are out of scope, exactly as spec.md requires.
package syntax

import "github.com/macrohost/hirexpand/common"

// Kind tags every node and token. This is intentionally a small, toy
// grammar (expressions, items, statements, patterns, types, attributes)
// rather than a full systems-language grammar — just enough surface for
// every ExpandTo category of spec.md §3 and Scenario 5 to have a home.
type Kind int32

const (
	// Token kinds.
	IDENT Kind = iota
	INT_NUMBER
	STRING
	LIFETIME_IDENT
	PUNCT
	WHITESPACE
	COMMENT
	DOC_COMMENT

	// Node kinds.
	SOURCE_FILE
	ITEM_LIST
	FN
	STRUCT
	BLOCK_EXPR
	STMT_LIST
	EXPR_STMT
	LET_STMT
	CALL_EXPR
	RETURN_EXPR
	BIN_EXPR
	PATH_EXPR
	LITERAL_EXPR
	MACRO_CALL
	MACRO_STMTS
	MACRO_ITEMS
	MACRO_PAT
	MACRO_TYPE
	MACRO_EXPR
	TOKEN_TREE
	ATTR
	DERIVE_ATTR
	META
	NAME
	PATH
	PATH_SEGMENT
)

var kindNames = map[Kind]string{
	IDENT: "IDENT", INT_NUMBER: "INT_NUMBER", STRING: "STRING",
	LIFETIME_IDENT: "LIFETIME_IDENT", PUNCT: "PUNCT", WHITESPACE: "WHITESPACE",
	COMMENT: "COMMENT", DOC_COMMENT: "DOC_COMMENT", SOURCE_FILE: "SOURCE_FILE",
	ITEM_LIST: "ITEM_LIST", FN: "FN", STRUCT: "STRUCT", BLOCK_EXPR: "BLOCK_EXPR",
	STMT_LIST: "STMT_LIST", EXPR_STMT: "EXPR_STMT", LET_STMT: "LET_STMT",
	CALL_EXPR: "CALL_EXPR", RETURN_EXPR: "RETURN_EXPR", BIN_EXPR: "BIN_EXPR",
	PATH_EXPR: "PATH_EXPR", LITERAL_EXPR: "LITERAL_EXPR", MACRO_CALL: "MACRO_CALL",
	MACRO_STMTS: "MACRO_STMTS", MACRO_ITEMS: "MACRO_ITEMS", MACRO_PAT: "MACRO_PAT",
	MACRO_TYPE: "MACRO_TYPE", MACRO_EXPR: "MACRO_EXPR", TOKEN_TREE: "TOKEN_TREE",
	ATTR: "ATTR", DERIVE_ATTR: "DERIVE_ATTR", META: "META", NAME: "NAME",
	PATH: "PATH", PATH_SEGMENT: "PATH_SEGMENT",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsTrivia reports whether a token kind carries no grammatical meaning
// (whitespace and plain comments; doc comments are not trivia since
// spec.md §4.E turns them into synthesized attributes).
func (k Kind) IsTrivia() bool { return k == WHITESPACE || k == COMMENT }

// Element is either a *Node or a *Token; Go has no sealed union, so
// callers type-switch on the concrete pointer type.
type Element interface {
	Range() common.TextRange
	Parent() *Node
	setParent(*Node)
}

// Token is a leaf: a single lexical token with its exact source range.
type Token struct {
	Kind   Kind
	Text   string
	Rng    common.TextRange
	parent *Node
}

func (t *Token) Range() common.TextRange { return t.Rng }
func (t *Token) Parent() *Node           { return t.parent }
func (t *Token) setParent(n *Node)       { t.parent = n }

// Node is an interior tree node with ordered children (Node or Token).
type Node struct {
	Kind     Kind
	Children []Element
	parent   *Node
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) setParent(p *Node) { n.parent = p }

// Range is the covering range of all of the node's children; an empty
// node (no children) has a zero-length range at offset 0.
func (n *Node) Range() common.TextRange {
	if len(n.Children) == 0 {
		return common.TextRange{}
	}
	r := n.Children[0].Range()
	for _, c := range n.Children[1:] {
		r = r.Cover(c.Range())
	}
	return r
}

// NewNode builds a node from children, wiring parent pointers.
func NewNode(kind Kind, children ...Element) *Node {
	n := &Node{Kind: kind, Children: children}
	for _, c := range children {
		c.setParent(n)
	}
	return n
}

// Push appends a child, wiring its parent pointer.
func (n *Node) Push(e Element) {
	e.setParent(n)
	n.Children = append(n.Children, e)
}

// Tokens yields every leaf token under n, in source order, skipping
// nothing (callers filter trivia themselves where that matters).
func (n *Node) Tokens() []*Token {
	var out []*Token
	var walk func(Element)
	walk = func(e Element) {
		switch v := e.(type) {
		case *Token:
			out = append(out, v)
		case *Node:
			for _, c := range v.Children {
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

// NonTriviaTokens is Tokens filtered to exclude WHITESPACE/COMMENT.
func (n *Node) NonTriviaTokens() []*Token {
	all := n.Tokens()
	out := all[:0:0]
	for _, t := range all {
		if !t.Kind.IsTrivia() {
			out = append(out, t)
		}
	}
	return out
}

// Ancestors yields n and every strict ancestor, innermost first.
func Ancestors(n *Node) []*Node {
	var out []*Node
	for cur := n; cur != nil; cur = cur.Parent() {
		out = append(out, cur)
	}
	return out
}

// FindToken returns the first token (depth-first) whose range exactly
// equals rng, or nil.
func (n *Node) FindToken(rng common.TextRange) *Token {
	for _, t := range n.Tokens() {
		if t.Rng == rng {
			return t
		}
	}
	return nil
}
