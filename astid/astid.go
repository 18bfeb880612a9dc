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

// Package astid implements spec.md's component C: a per-file table that
// gives every syntax node a stable index, resilient to reparses as long
// as the file's AST shape doesn't change. It is deliberately generic
// over the file-identifying type F (package hirfile supplies HirFileId)
// and over a phantom node-kind type N, so it has no dependency on
// hirfile and can't form an import cycle with it.
package astid

import "github.com/macrohost/hirexpand/syntax"

// NodeIndex is the stable, per-file position index of spec.md §4.C,
// assigned in a deterministic (depth-first, pre-order) traversal so
// small edits elsewhere in the file don't reshuffle unrelated indices.
type NodeIndex uint32

// AstId is the pair (file, stable index) of spec.md §3 "AST-id". N is a
// phantom type parameter recording what kind of syntax node the id
// points at (e.g. a macro call vs. an attributed item), purely for
// compile-time distinction between otherwise-identical (F, NodeIndex)
// pairs; it has no runtime representation.
type AstId[F comparable, N any] struct {
	File  F
	Value NodeIndex
}

// Map is the per-file table of spec.md §4.C: built once per parse by
// walking the file's syntax tree in a fixed order, then queried by
// NodeIndex to recover the corresponding node after a reparse.
type Map struct {
	nodes []*syntax.Node
	index map[*syntax.Node]NodeIndex
}

// Build walks root in depth-first pre-order and assigns each node a
// NodeIndex in that order. Tokens are not indexed: only interior nodes
// are stable attachment points for macro calls, attributes, and derives
// per spec.md §4.C.
func Build(root *syntax.Node) *Map {
	m := &Map{index: make(map[*syntax.Node]NodeIndex)}
	var walk func(n *syntax.Node)
	walk = func(n *syntax.Node) {
		idx := NodeIndex(len(m.nodes))
		m.nodes = append(m.nodes, n)
		m.index[n] = idx
		for _, c := range n.Children {
			if child, ok := c.(*syntax.Node); ok {
				walk(child)
			}
		}
	}
	walk(root)
	return m
}

// IndexOf returns the stable index assigned to n, if n was part of the
// tree Build walked.
func (m *Map) IndexOf(n *syntax.Node) (NodeIndex, bool) {
	idx, ok := m.index[n]
	return idx, ok
}

// NodeAt recovers the node at idx. When Map was built from a freshly
// reparsed tree of unchanged structural shape, this is the node
// structurally corresponding to whatever originally received idx
// (spec.md §4.C's required guarantee) — Map itself doesn't verify
// "unchanged shape"; that is the incremental engine's job (memoizing
// Build per revision and only reusing an old Map when it detects no
// shape-relevant edit occurred).
func (m *Map) NodeAt(idx NodeIndex) (*syntax.Node, bool) {
	if int(idx) < 0 || int(idx) >= len(m.nodes) {
		return nil, false
	}
	return m.nodes[idx], true
}

// Len reports how many nodes were indexed.
func (m *Map) Len() int { return len(m.nodes) }
