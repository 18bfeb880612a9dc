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

// Package tokenmap implements the per-token-tree association between
// opaque tt.TokenId values and the text ranges they occupy (spec.md
// §3 "Token map", §4.D). This is the load-bearing data structure the
// token-tree bridge and the expansion engine both build and query; it
// plays the role the teacher's parser/helper.go "positions map" plays
// for a single flat id→offset table, generalized to ranges, paired
// delimiters, and syntax-kind-qualified lookups.
package tokenmap

import (
	"github.com/macrohost/hirexpand/common"
	"github.com/macrohost/hirexpand/tt"
)

// SyntaxKind is a small opaque tag used to disambiguate multiple ranges
// recorded under the same TokenId that differ in grammatical role (e.g.
// two identifiers with identical text but different hygiene contexts,
// per spec.md §3). The syntax package defines the concrete kind values;
// this package only compares them for equality.
type SyntaxKind int32

// AnyKind matches every recorded range regardless of its kind tag.
const AnyKind SyntaxKind = -1

type leafEntry struct {
	rng  common.TextRange
	kind SyntaxKind
}

type delimEntry struct {
	open  common.TextRange
	close common.TextRange
	// hasClose is false for a delimiter left unterminated at
	// end-of-input (spec.md §3 "close may be absent").
	hasClose bool
}

// TokenMap is the association table built while converting one syntax
// subtree into one token tree (or vice versa). It is immutable after
// construction; the bridge builds it with a Builder, and every other
// component only reads it.
type TokenMap struct {
	leaves map[tt.TokenId][]leafEntry
	delims map[tt.TokenId]delimEntry
	// byRange lets token_by_range be implemented without a linear scan.
	byRange map[common.TextRange]tt.TokenId
	// maxId is one past the highest id recorded, the boundary Shift
	// needs to union this map's id space with another's (spec.md §3
	// "Shift").
	maxId tt.TokenId
}

// MaxId returns one past the highest TokenId recorded in m, the same
// value Builder.MaxId reports for the Builder that produced it.
func (m *TokenMap) MaxId() tt.TokenId { return m.maxId }

// Builder accumulates entries while a syntax tree is walked; callers
// (package bridge) call Builder methods in source order and then take
// the finished TokenMap with Build.
type Builder struct {
	nextId tt.TokenId
	m      *TokenMap
}

// NewBuilder starts a fresh, empty token map under construction.
func NewBuilder() *Builder {
	return &Builder{
		nextId: 0,
		m: &TokenMap{
			leaves:  make(map[tt.TokenId][]leafEntry),
			delims:  make(map[tt.TokenId]delimEntry),
			byRange: make(map[common.TextRange]tt.TokenId),
		},
	}
}

// AllocLeaf records a new leaf token's range and kind, returning the id
// assigned to it. Ids are assigned sequentially as tokens are emitted
// during the bridge conversion (spec.md §4.D "Construction").
func (b *Builder) AllocLeaf(rng common.TextRange, kind SyntaxKind) tt.TokenId {
	id := b.nextId
	b.nextId++
	b.m.leaves[id] = append(b.m.leaves[id], leafEntry{rng: rng, kind: kind})
	b.m.byRange[rng] = id
	return id
}

// AllocDelimiter records a new paired-delimiter entry. Close may be the
// zero range with hasClose=false when the opening delimiter was never matched
// (unterminated subtree recovery, spec.md §4.E Scenario 6).
func (b *Builder) AllocDelimiter(open common.TextRange, close common.TextRange, hasClose bool) tt.TokenId {
	id := b.nextId
	b.nextId++
	b.m.delims[id] = delimEntry{open: open, close: close, hasClose: hasClose}
	b.m.byRange[open] = id
	if hasClose {
		b.m.byRange[close] = id
	}
	return id
}

// SetLeafRange records a range under an explicit, caller-chosen id
// rather than allocating a fresh one. This is what the token-tree ->
// syntax direction (package bridge) uses while reparsing an expansion:
// every leaf in the expander's output subtree already carries the id
// the expander assigned it, so the expansion's token map must preserve
// that id rather than renumber it (spec.md §4.G "exp_map").
func (b *Builder) SetLeafRange(id tt.TokenId, rng common.TextRange, kind SyntaxKind) {
	b.m.leaves[id] = append(b.m.leaves[id], leafEntry{rng: rng, kind: kind})
	b.m.byRange[rng] = id
	b.bump(id)
}

// SetDelimiterRange is SetLeafRange's counterpart for a delimiter pair
// whose id the caller already knows.
func (b *Builder) SetDelimiterRange(id tt.TokenId, open, close common.TextRange, hasClose bool) {
	b.m.delims[id] = delimEntry{open: open, close: close, hasClose: hasClose}
	b.m.byRange[open] = id
	if hasClose {
		b.m.byRange[close] = id
	}
	b.bump(id)
}

// bump keeps nextId one past the highest id the builder has seen, so
// MaxId is meaningful even for a builder that only ever used the
// explicit-id Set* methods (package bridge's reverse direction).
func (b *Builder) bump(id tt.TokenId) {
	if id != tt.NoTokenId && id >= b.nextId {
		b.nextId = id + 1
	}
}

// AddLeafRange records an additional range under an id that already
// exists (used when substitution in a declarative macro body causes the
// same captured token to appear more than once in the expansion, spec.md
// §8 "Map-down multiplicity").
func (b *Builder) AddLeafRange(id tt.TokenId, rng common.TextRange, kind SyntaxKind) {
	b.m.leaves[id] = append(b.m.leaves[id], leafEntry{rng: rng, kind: kind})
	b.m.byRange[rng] = id
}

// MaxId returns one past the highest id allocated so far, the value at
// which Shift values begin (spec.md §3 "Shift").
func (b *Builder) MaxId() tt.TokenId { return b.nextId }

// Build finalizes the map. The Builder must not be used afterward.
func (b *Builder) Build() *TokenMap {
	b.m.maxId = b.nextId
	return b.m
}

// RangeByToken returns every recorded range for id, across both leaf and
// delimiter tables; for a delimiter it returns the open range (and the
// close range, if present) as two ranges.
func (m *TokenMap) RangeByToken(id tt.TokenId) []common.TextRange {
	if ranges, ok := m.leaves[id]; ok {
		out := make([]common.TextRange, len(ranges))
		for i, e := range ranges {
			out[i] = e.rng
		}
		return out
	}
	if d, ok := m.delims[id]; ok {
		if d.hasClose {
			return []common.TextRange{d.open, d.close}
		}
		return []common.TextRange{d.open}
	}
	return nil
}

// FirstRangeByToken returns the first recorded range for id whose kind
// matches, used to disambiguate identifiers with identical text from
// different hygiene contexts (spec.md §3).
func (m *TokenMap) FirstRangeByToken(id tt.TokenId, kind SyntaxKind) (common.TextRange, bool) {
	for _, e := range m.leaves[id] {
		if kind == AnyKind || e.kind == kind {
			return e.rng, true
		}
	}
	if d, ok := m.delims[id]; ok && (kind == AnyKind) {
		return d.open, true
	}
	return common.TextRange{}, false
}

// RangesByTokenAndKind returns every recorded range for id whose
// recorded SyntaxKind equals kind (or every range, if kind is AnyKind).
// This is the multi-valued counterpart FirstRangeByToken doesn't cover:
// spec.md §4.G "Map-token-down" requires *all* matching ranges, since a
// declarative macro may reference the same captured token more than
// once in its expansion.
func (m *TokenMap) RangesByTokenAndKind(id tt.TokenId, kind SyntaxKind) []common.TextRange {
	var out []common.TextRange
	for _, e := range m.leaves[id] {
		if kind == AnyKind || e.kind == kind {
			out = append(out, e.rng)
		}
	}
	if d, ok := m.delims[id]; ok && kind == AnyKind {
		out = append(out, d.open)
		if d.hasClose {
			out = append(out, d.close)
		}
	}
	return out
}

// TokenByRange returns the id whose range is exactly rng.
func (m *TokenMap) TokenByRange(rng common.TextRange) (tt.TokenId, bool) {
	id, ok := m.byRange[rng]
	return id, ok
}

// DelimiterRanges returns the open and close ranges for a delimiter id,
// and whether a close range is present.
func (m *TokenMap) DelimiterRanges(id tt.TokenId) (open, close common.TextRange, hasClose, ok bool) {
	d, found := m.delims[id]
	if !found {
		return common.TextRange{}, common.TextRange{}, false, false
	}
	return d.open, d.close, d.hasClose, true
}

// Shift is a constant offset applied to a TokenId to union two token
// maps into one id space (spec.md §3 "Shift", §4.D "Merging"). It
// remembers the boundary so an id can be un-shifted on the way back.
type Shift tt.TokenId

// ShiftFor returns the Shift needed to place a second map's ids after a
// first map whose MaxId (one past its highest id) is maxId.
func ShiftFor(maxId tt.TokenId) Shift { return Shift(maxId) }

// Apply shifts an id from the second map's space into the merged space.
func (s Shift) Apply(id tt.TokenId) tt.TokenId { return id + tt.TokenId(s) }

// Unapply reverses Apply. ok is false when id does not lie in the
// shifted range, meaning it belongs to the first (un-shifted) map.
func (s Shift) Unapply(id tt.TokenId) (tt.TokenId, bool) {
	if tt.TokenId(id) < tt.TokenId(s) {
		return 0, false
	}
	return id - tt.TokenId(s), true
}

// ShiftSubtree returns a deep copy of sub with every leaf and delimiter
// id shifted by s (ids already equal to tt.NoTokenId are left alone).
// This is what unions a second token tree's id space into a merged map
// (spec.md §3 "Shift", §4.D "Merging") before an expander ever sees it —
// e.g. an attribute's own argument tree, merged with the attributed
// item's token map per spec.md §4.G's attribute id-space.
func ShiftSubtree(sub *tt.Subtree, s Shift) *tt.Subtree {
	out := &tt.Subtree{Delimiter: sub.Delimiter, Id: shiftId(sub.Id, s)}
	out.TokenTrees = make([]tt.TokenTree, len(sub.TokenTrees))
	for i, child := range sub.TokenTrees {
		switch v := child.(type) {
		case *tt.Leaf:
			l := *v
			l.Id = shiftId(v.Id, s)
			out.TokenTrees[i] = &l
		case *tt.Subtree:
			out.TokenTrees[i] = ShiftSubtree(v, s)
		}
	}
	return out
}

func shiftId(id tt.TokenId, s Shift) tt.TokenId {
	if id == tt.NoTokenId {
		return id
	}
	return s.Apply(id)
}

// Merge combines two token maps into one, shifting every id from b by
// shift. The returned map's byRange index covers both inputs.
func Merge(a, b *TokenMap, shift Shift) *TokenMap {
	out := &TokenMap{
		leaves:  make(map[tt.TokenId][]leafEntry, len(a.leaves)+len(b.leaves)),
		delims:  make(map[tt.TokenId]delimEntry, len(a.delims)+len(b.delims)),
		byRange: make(map[common.TextRange]tt.TokenId, len(a.byRange)+len(b.byRange)),
	}
	for id, entries := range a.leaves {
		out.leaves[id] = append([]leafEntry(nil), entries...)
	}
	for id, d := range a.delims {
		out.delims[id] = d
	}
	for rng, id := range a.byRange {
		out.byRange[rng] = id
	}
	for id, entries := range b.leaves {
		sid := shift.Apply(id)
		out.leaves[sid] = append(out.leaves[sid], entries...)
	}
	for id, d := range b.delims {
		out.delims[shift.Apply(id)] = d
	}
	for rng, id := range b.byRange {
		out.byRange[rng] = shift.Apply(id)
	}
	out.maxId = shift.Apply(b.maxId)
	if a.maxId > out.maxId {
		out.maxId = a.maxId
	}
	return out
}
