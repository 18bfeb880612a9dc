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

// Package expanderr carries the error taxonomy at the macro-expansion
// boundary (spec.md §6-§7): a single, closed set of failure kinds that
// every expander, the expansion engine, and the proc-macro client report
// through, rather than ad hoc error strings or control-flow panics.
package expanderr

import "fmt"

// Kind is the closed taxonomy of expansion failures.
type Kind int

const (
	// Other is an expander-reported failure with a free-form message.
	Other Kind = iota
	// ConversionError means the expander produced an ill-formed token
	// tree that could not be converted back into a syntax tree.
	ConversionError
	// UnresolvedProcMacro means the macro's definition names a
	// procedural macro that is not (yet, or ever) loaded.
	UnresolvedProcMacro
)

func (k Kind) String() string {
	switch k {
	case ConversionError:
		return "ConversionError"
	case UnresolvedProcMacro:
		return "UnresolvedProcMacro"
	default:
		return "Other"
	}
}

// ExpandError is the value-carrying failure type threaded through every
// expansion path in this module. It is never used for control flow that
// a caller is expected to recover from structurally; see Kind for the
// three cases collaborators must distinguish.
type ExpandError struct {
	Kind    Kind
	Message string
}

func (e *ExpandError) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewOther builds an Other-kind error from a format string, mirroring the
// teacher's Errors.ReportError formatting convention.
func NewOther(format string, args ...any) *ExpandError {
	return &ExpandError{Kind: Other, Message: fmt.Sprintf(format, args...)}
}

// NewConversionError builds a ConversionError.
func NewConversionError(format string, args ...any) *ExpandError {
	return &ExpandError{Kind: ConversionError, Message: fmt.Sprintf(format, args...)}
}

// NewUnresolvedProcMacro builds an UnresolvedProcMacro error naming the
// macro that could not be resolved.
func NewUnresolvedProcMacro(macroName string) *ExpandError {
	return &ExpandError{Kind: UnresolvedProcMacro, Message: macroName}
}

// ExpandResult pairs a best-effort partial value with an optional error,
// per spec.md §7: "all three are reported as a value carrying both a
// best-effort partial result and an optional error; never as control-flow
// escape."
type ExpandResult[T any] struct {
	Value T
	Err   *ExpandError
}

// Ok reports whether the result carries no error.
func (r ExpandResult[T]) Ok() bool { return r.Err == nil }
