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
	"github.com/macrohost/hirexpand/bridge"
	"github.com/macrohost/hirexpand/expanderr"
	"github.com/macrohost/hirexpand/syntax"
	"github.com/macrohost/hirexpand/tt"
)

// BuiltinFn is a host-code function-like, attribute, or eager-builtin
// implementation keyed by name (spec.md §4.F "host-code implementations
// keyed by name"), the same shape the teacher's parser/macro.go uses for
// its own table of named expander functions.
type BuiltinFn func(input *tt.Subtree, attrInput *tt.Subtree) expanderr.ExpandResult[*tt.Subtree]

// BuiltinFnLike wraps a host-implemented function-like macro (stringify!,
// line!, concat! and friends, minus their eager-argument plumbing, which
// package eager layers on top).
type BuiltinFnLike struct {
	identityMapper
	Name string
	Fn   BuiltinFn
}

func NewBuiltinFnLike(name string, fn BuiltinFn) *BuiltinFnLike {
	return &BuiltinFnLike{Name: name, Fn: fn}
}

func (b *BuiltinFnLike) Expand(input, attrInput *tt.Subtree) expanderr.ExpandResult[*tt.Subtree] {
	return b.Fn(input, attrInput)
}

// BuiltinAttr wraps a host-implemented attribute macro.
type BuiltinAttr struct {
	identityMapper
	Name string
	Fn   BuiltinFn
}

func NewBuiltinAttr(name string, fn BuiltinFn) *BuiltinAttr {
	return &BuiltinAttr{Name: name, Fn: fn}
}

func (b *BuiltinAttr) Expand(input, attrInput *tt.Subtree) expanderr.ExpandResult[*tt.Subtree] {
	return b.Fn(input, attrInput)
}

// BuiltinDerive wraps a host-implemented derive macro (Debug, Clone,
// ...): it only ever reads the attributed item, never an attribute
// argument.
type BuiltinDerive struct {
	identityMapper
	Name string
	Fn   BuiltinFn
}

func NewBuiltinDerive(name string, fn BuiltinFn) *BuiltinDerive {
	return &BuiltinDerive{Name: name, Fn: fn}
}

func (b *BuiltinDerive) Expand(input, _ *tt.Subtree) expanderr.ExpandResult[*tt.Subtree] {
	return b.Fn(input, nil)
}

// BuiltinEager wraps a host-implemented function-like macro whose
// argument must already be fully expanded by the time Expand sees it
// (include!, concat!, env!; spec.md §4.I). Neither this type nor
// package eager expands the argument: package eager only records a
// caller-expanded tree in the call's EagerCallInfo (PreExpandArg).
// Expand itself is a pure function of whatever token tree it's handed.
type BuiltinEager struct {
	identityMapper
	Name string
	Fn   BuiltinFn
}

func NewBuiltinEager(name string, fn BuiltinFn) *BuiltinEager {
	return &BuiltinEager{Name: name, Fn: fn}
}

func (b *BuiltinEager) Expand(input, _ *tt.Subtree) expanderr.ExpandResult[*tt.Subtree] {
	return b.Fn(input, nil)
}

// Stringify implements the stringify! built-in: render the input token
// tree back to source text and produce a single string literal holding
// it. Grounded on bridge.TokenTreeToSyntax, the same reverse-direction
// renderer the expansion engine itself uses to turn an expansion back
// into source.
func Stringify(input *tt.Subtree, _ *tt.Subtree) expanderr.ExpandResult[*tt.Subtree] {
	_, _, text, err := bridge.TokenTreeToSyntax(input, syntax.TOKEN_TREE)
	if err != nil {
		return expanderr.ExpandResult[*tt.Subtree]{Err: expanderr.NewConversionError("stringify!: %v", err)}
	}
	out := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	out.Push(tt.NewLiteral(quote(text), tt.NoTokenId))
	return expanderr.ExpandResult[*tt.Subtree]{Value: out}
}

func quote(s string) string {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b = append(b, '\\')
		}
		b = append(b, s[i])
	}
	b = append(b, '"')
	return string(b)
}

// Concat implements the concat! built-in over a single top-level input
// subtree whose children are literal leaves separated by commas: it
// joins their textual forms (quotes stripped from string literals) into
// one new string literal.
func Concat(input *tt.Subtree, _ *tt.Subtree) expanderr.ExpandResult[*tt.Subtree] {
	var joined string
	for _, frag := range bridge.SplitOnSeparator(input, ',') {
		for _, child := range frag.TokenTrees {
			leaf, ok := child.(*tt.Leaf)
			if !ok || leaf.Kind != tt.LeafLiteral {
				continue
			}
			joined += unquote(leaf.Text)
		}
	}
	out := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	out.Push(tt.NewLiteral(quote(joined), tt.NoTokenId))
	return expanderr.ExpandResult[*tt.Subtree]{Value: out}
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
