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

// Package procmacro is the out-of-process expander wire surface spec.md
// §4.F and §6 describe: procedural macros are not run in this process
// (the defining crate is arbitrary host-language code the engine merely
// loads and drives), so every procedural Expander call crosses this
// package's Client interface instead of calling anything directly.
//
// It is grounded on ra_proc_macro/src/lib.rs's ProcMacroClient /
// ProcMacroProcessExpander split: a thin client type wrapping a single
// external handle (here, a process or an in-process stub interchangeably,
// via the Client interface) that the macro-def registry's Proc expander
// calls through.
package procmacro

import "github.com/macrohost/hirexpand/tt"

// ExpandRequest is what crosses the wire to ask an external expander to
// run one procedural macro (spec.md §4.F "the input is serialized to an
// out-of-process expander").
type ExpandRequest struct {
	MacroName string
	Input     *tt.Subtree
	// Attr is non-nil only for attribute-macro calls.
	Attr *tt.Subtree
}

// Client is the narrow interface the macro-def registry's Proc expander
// needs. A real implementation serializes Input/Attr over a pipe to an
// external process and deserializes its response (or failure); LocalClient
// (local.go) is the in-process stand-in the package tests use, since
// this module ships no actual proc-macro host binary.
type Client interface {
	Expand(req ExpandRequest) (*tt.Subtree, error)
}
