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

// Package hirfile implements spec.md's component B, the virtual file
// identity model, plus the data-model types of spec.md §3 that only make
// sense relative to it (MacroCallLoc, MacroCallKind, MacroDefId,
// EagerCallInfo). A HirFileId is a real file or a macro call interpreted
// as a file; every other component addresses source text through one of
// these instead of a bare FileId, which is exactly what lets the rest of
// the analyzer treat macro-generated code as just more source.
package hirfile

import (
	"github.com/macrohost/hirexpand/astid"
	"github.com/macrohost/hirexpand/common"
	"github.com/macrohost/hirexpand/interner"
	"github.com/macrohost/hirexpand/tokenmap"
	"github.com/macrohost/hirexpand/tt"
)

// CrateId is the compilation unit a macro call or def belongs to,
// relevant for resolution/hygiene per spec.md §3.
type CrateId uint32

// MacroCallLoc is the location of one macro invocation (spec.md §3
// "Macro-call location"). Two calls with field-for-field-equal Locs
// intern to the same MacroCallId (spec.md §4.A).
type MacroCallLoc struct {
	Def   MacroDefId
	Krate CrateId
	// Eager is nil for calls that aren't eagerly expanded.
	Eager *EagerCallInfo
	Kind  MacroCallKind
}

// FileAstId is the file-id-bound instantiation of astid.AstId used
// throughout this module: a stable position inside a specific
// HirFileId. N is a phantom marker for what the id points at.
type FileAstId[N any] = astid.AstId[HirFileId, N]

// CallSyntax marks a FileAstId as pointing at the syntax of a macro call
// itself (spec.md §3 "FnLike: an AST-id pointing to the call syntax").
type CallSyntax struct{}

// AttrOwner marks a FileAstId as pointing at an attributed item (spec.md
// §3 "Derive"/"Attr": "the AST-id of the attributed item").
type AttrOwner struct{}

// ExpandTo is the syntactic category a macro call's output is parsed as
// (spec.md §3, §4.G step 4, Scenario 5).
type ExpandTo int

const (
	ExpandStatements ExpandTo = iota
	ExpandItems
	ExpandPattern
	ExpandType
	ExpandExpr
)

func (e ExpandTo) String() string {
	switch e {
	case ExpandStatements:
		return "Statements"
	case ExpandPattern:
		return "Pattern"
	case ExpandType:
		return "Type"
	case ExpandExpr:
		return "Expr"
	default:
		return "Items"
	}
}

// MacroCallKindTag distinguishes the three call shapes of spec.md §3.
type MacroCallKindTag int

const (
	FnLike MacroCallKindTag = iota
	Derive
	Attr
)

// MacroCallKind is the tagged union of spec.md §3's three call shapes,
// represented as a flat comparable struct (rather than an interface) so
// that MacroCallLoc remains usable as an interner.Interner map key.
// Fields irrelevant to Tag are zero.
type MacroCallKind struct {
	Tag MacroCallKindTag

	// FnLike fields.
	CallAstId FileAstId[CallSyntax]
	ExpandTo  ExpandTo

	// Derive and Attr fields: the attributed item.
	ItemAstId FileAstId[AttrOwner]

	// Derive fields.
	DeriveName  string
	DeriveIndex uint32

	// Attr fields. Attribute indices count outer attributes before
	// inner; cfg_attr fan-out is not modeled (spec.md §4.A, §9 "known
	// limitation" — reproduced here deliberately, not silently fixed).
	AttrName    string
	AttrArgs    *tt.Subtree
	AttrArgsMap *tokenmap.TokenMap
	AttrIndex   uint32
}

// EagerCallInfo carries the state needed by macros whose arguments are
// expanded before the macro sees them (spec.md §3, §4.I).
//
// ArgOrExpansion is, per spec.md §9, awkwardly either the pre-expansion
// argument or the post-expansion artifact depending on pipeline stage —
// preserved here for fidelity to the source this was distilled from. A
// clean implementation splits it into two fields; see Pre/Post below,
// which this module provides as the "clean reimplementation" spec.md §9
// recommends, while keeping ArgOrExpansion as a derived accessor for
// callers ported from code expecting the original shape.
type EagerCallInfo struct {
	Pre  *tt.Subtree
	Post *tt.Subtree // nil until eager expansion has run

	// IncludedFile, when set, is the file an include!-like macro's
	// eager expansion names; original_file redirects through it.
	IncludedFile    common.FileId
	HasIncludedFile bool
}

// ArgOrExpansion returns Post if eager expansion has already run,
// otherwise Pre — the polysemous field spec.md §9 flags as an open
// question in the source.
func (e *EagerCallInfo) ArgOrExpansion() *tt.Subtree {
	if e.Post != nil {
		return e.Post
	}
	return e.Pre
}

// MacroDefKind is the six-way sum of spec.md §3 "Macro-def id".
type MacroDefKind int

const (
	DefDeclarative MacroDefKind = iota
	DefBuiltinFnLike
	DefBuiltinAttr
	DefBuiltinDerive
	DefBuiltinEager
	DefProcAttr
	DefProcFnLike
	DefProcCustomDerive
)

func (k MacroDefKind) IsProcedural() bool {
	return k == DefProcAttr || k == DefProcFnLike || k == DefProcCustomDerive
}

// MacroDefId is the crate-scoped identity of a macro definition (spec.md
// §3 "Macro-def id"): the defining AST-id plus its kind. For procedural
// macros the AST-id points at the defining function; for every other
// kind it points at the defining syntax (the macro_rules!-equivalent
// item, or the built-in's declaration stub).
type MacroDefId struct {
	Krate  CrateId
	AstId  FileAstId[DefSyntax]
	Kind   MacroDefKind
	// Name disambiguates built-ins, which have no meaningful AstId of
	// their own pointing at user syntax.
	Name string
}

// DefSyntax marks a FileAstId as pointing at a macro definition.
type DefSyntax struct{}

// MacroCallId is the interned, stable handle for a MacroCallLoc
// (spec.md §3 "Macro-call id"), produced by component A.
type MacroCallId = interner.Id[MacroCallLoc]

// HirFileTag distinguishes the two HirFileId cases.
type HirFileTag int

const (
	RealFile HirFileTag = iota
	ExpansionFile
)

// HirFileId is the sum type of spec.md §3: a real file or a macro call
// interpreted as a file. Its size is bounded because real files
// terminate the recursion (spec.md §3 "Invariants").
type HirFileId struct {
	Tag   HirFileTag
	Real  common.FileId
	Macro MacroCallId
}

// Real builds a HirFileId wrapping a real file.
func Real(id common.FileId) HirFileId { return HirFileId{Tag: RealFile, Real: id} }

// Expansion builds a HirFileId wrapping a macro call.
func Expansion(id MacroCallId) HirFileId { return HirFileId{Tag: ExpansionFile, Macro: id} }

// IsMacro reports whether h is a macro expansion file.
func (h HirFileId) IsMacro() bool { return h.Tag == ExpansionFile }

// LocSource resolves a MacroCallId back to its MacroCallLoc; it is the
// interface hirfile needs from component A (package interner) without
// depending on the generic Interner type directly in every signature.
type LocSource interface {
	Lookup(id MacroCallId) (MacroCallLoc, bool)
}

// ExpansionLevel returns the expansion depth of h: 0 for a real file,
// otherwise 1 + the parent file's depth (spec.md §8 "Depth").
func ExpansionLevel(locs LocSource, h HirFileId) int {
	level := 0
	for h.IsMacro() {
		loc, ok := locs.Lookup(h.Macro)
		if !ok {
			return level
		}
		h = callSiteFile(loc)
		level++
	}
	return level
}

// callSiteFile returns the HirFileId that contains the syntax invoking
// loc (the "parent" in the finite HirFileId tree of spec.md §3).
func callSiteFile(loc MacroCallLoc) HirFileId {
	switch loc.Kind.Tag {
	case FnLike:
		return loc.Kind.CallAstId.File
	default: // Derive, Attr
		return loc.Kind.ItemAstId.File
	}
}

// ParentFile is callSiteFile exported for other packages (expand,
// ascend) that need the same "one parent, via the call node's file"
// navigation spec.md §3 describes as an invariant.
func ParentFile(loc MacroCallLoc) HirFileId { return callSiteFile(loc) }

// CallSiteNodeRef returns the (file, stable index) pair addressing the
// call's own syntax in its parent file: the call expression itself for
// FnLike, or the attributed item for Derive/Attr. It exists because
// CallAstId and ItemAstId carry different phantom N type parameters
// (CallSyntax vs. AttrOwner) and so can't be returned through one
// FileAstId[N]-typed value; callers (package ascend) only ever need the
// (file, index) pair to look the node back up through an astid.Map.
func CallSiteNodeRef(kind MacroCallKind) (HirFileId, astid.NodeIndex) {
	if kind.Tag == FnLike {
		return kind.CallAstId.File, kind.CallAstId.Value
	}
	return kind.ItemAstId.File, kind.ItemAstId.Value
}

// OriginalFile walks the parent chain until a real file is reached. For
// an expansion whose eager info names an included file, that file is
// returned instead — this is how include!-like macros anchor foreign
// text into the call tree (spec.md §4.B).
func OriginalFile(locs LocSource, h HirFileId) common.FileId {
	for {
		if !h.IsMacro() {
			return h.Real
		}
		loc, ok := locs.Lookup(h.Macro)
		if !ok {
			return common.NoFileId
		}
		if loc.Eager != nil && loc.Eager.HasIncludedFile {
			return loc.Eager.IncludedFile
		}
		h = callSiteFile(loc)
	}
}

// IsAttrMacro reports whether h's call is an attribute-macro invocation.
func IsAttrMacro(locs LocSource, h HirFileId) bool {
	loc, ok := locOf(locs, h)
	return ok && loc.Kind.Tag == Attr
}

// IsCustomDerive reports whether h's call is a procedural custom-derive.
func IsCustomDerive(locs LocSource, h HirFileId) bool {
	loc, ok := locOf(locs, h)
	return ok && loc.Kind.Tag == Derive && loc.Def.Kind == DefProcCustomDerive
}

// IsBuiltinDerive reports whether h's call is a built-in derive.
func IsBuiltinDerive(locs LocSource, h HirFileId) bool {
	loc, ok := locOf(locs, h)
	return ok && loc.Kind.Tag == Derive && loc.Def.Kind == DefBuiltinDerive
}

// IsIncludeMacro reports whether h's call names an included file.
func IsIncludeMacro(locs LocSource, h HirFileId) bool {
	loc, ok := locOf(locs, h)
	return ok && loc.Eager != nil && loc.Eager.HasIncludedFile
}

func locOf(locs LocSource, h HirFileId) (MacroCallLoc, bool) {
	if !h.IsMacro() {
		return MacroCallLoc{}, false
	}
	return locs.Lookup(h.Macro)
}
