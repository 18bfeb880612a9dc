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
	"github.com/macrohost/hirexpand/procmacro"
	"github.com/macrohost/hirexpand/tt"
)

// ProcKind distinguishes the three procedural-macro call shapes spec.md
// §3 lists (Attr, FnLike, CustomDerive), which all share the same
// out-of-process dispatch but differ in what gets serialized.
type ProcKind int

const (
	ProcAttr ProcKind = iota
	ProcFnLike
	ProcCustomDerive
)

// Proc dispatches to an out-of-process expander over procmacro's wire
// client (spec.md §4.F "Procedural"). Failures the client reports
// (process crash, panic inside the expander, protocol error) are
// reclassified here into the core's own ExpandError taxonomy so callers
// never need to know the wire client exists.
type Proc struct {
	identityMapper
	Name   string
	Kind   ProcKind
	Client procmacro.Client
}

func NewProc(name string, kind ProcKind, client procmacro.Client) *Proc {
	return &Proc{Name: name, Kind: kind, Client: client}
}

func (p *Proc) Expand(input, attrInput *tt.Subtree) expanderr.ExpandResult[*tt.Subtree] {
	req := procmacro.ExpandRequest{
		MacroName: p.Name,
		Input:     input,
		Attr:      attrInput,
	}
	resp, err := p.Client.Expand(req)
	if err != nil {
		return expanderr.ExpandResult[*tt.Subtree]{Err: classify(p.Name, err)}
	}
	return expanderr.ExpandResult[*tt.Subtree]{Value: resp}
}

// classify turns a procmacro.ClientError into the ExpandError taxonomy
// spec.md §4.F requires expanders to report through. A process that
// never loaded in the first place (the macro named an unresolved
// procedural macro) is distinguished from one that loaded but then
// misbehaved, since the former is the one case a fatal assertion must
// never be built on (a crate legitimately may not ship the proc-macro
// binary spec.md expects).
func classify(name string, err error) *expanderr.ExpandError {
	if ce, ok := err.(*procmacro.ClientError); ok {
		switch ce.Kind {
		case procmacro.ErrNotLoaded:
			return expanderr.NewUnresolvedProcMacro(name)
		case procmacro.ErrProcessCrash:
			return expanderr.NewOther("proc-macro %q: server process crashed: %v", name, ce.Message)
		case procmacro.ErrPanic:
			return expanderr.NewOther("proc-macro %q: panicked while expanding: %v", name, ce.Message)
		case procmacro.ErrProtocol:
			return expanderr.NewOther("proc-macro %q: protocol error: %v", name, ce.Message)
		}
	}
	return expanderr.NewOther("proc-macro %q: %v", name, err)
}
