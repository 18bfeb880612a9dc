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

package procmacro

import "fmt"

// ErrorKind is the closed set of ways a Client.Expand call can fail,
// matching spec.md §4.F's "failures are classified (process crash,
// panic inside expander, protocol error)" verbatim, plus the one case
// that precedes all three: the named macro was never loaded at all.
type ErrorKind int

const (
	ErrNotLoaded ErrorKind = iota
	ErrProcessCrash
	ErrPanic
	ErrProtocol
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNotLoaded:
		return "not loaded"
	case ErrProcessCrash:
		return "process crash"
	case ErrPanic:
		return "panic"
	case ErrProtocol:
		return "protocol error"
	default:
		return "unknown"
	}
}

// ClientError is what a Client implementation returns on failure; the
// macro-def registry's Proc expander reclassifies it into an
// expanderr.ExpandError so the rest of the core never imports this
// package's error type directly.
type ClientError struct {
	Kind    ErrorKind
	Message string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
