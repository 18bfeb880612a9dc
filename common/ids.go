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

// Package common defines the basic position and identity types shared by
// every other package: file handles, byte offsets, and ranges over them.
package common

import "fmt"

// FileId is an opaque handle to a user-authored, real (non-virtual) file.
// Equality and hashing are the only required operations; callers must treat
// the zero value as "no file" and never dereference it.
type FileId uint32

// NoFileId is the zero value, reserved to mean "not a real file".
const NoFileId FileId = 0

// TextSize is a byte offset into some source text.
type TextSize uint32

// TextRange is a half-open byte range [Start, End) into some source text.
type TextRange struct {
	Start TextSize
	End   TextSize
}

// NewTextRange builds a range, panicking if start > end: an inverted range
// is always a caller bug, never a recoverable condition.
func NewTextRange(start, end TextSize) TextRange {
	if start > end {
		panic(fmt.Sprintf("invalid text range: start %d > end %d", start, end))
	}
	return TextRange{Start: start, End: end}
}

// Len returns the number of bytes covered by the range.
func (r TextRange) Len() TextSize { return r.End - r.Start }

// IsEmpty reports whether the range covers zero bytes.
func (r TextRange) IsEmpty() bool { return r.Start == r.End }

// Contains reports whether pos lies within the range (End exclusive).
func (r TextRange) Contains(pos TextSize) bool { return r.Start <= pos && pos < r.End }

// ContainsRange reports whether other is fully covered by r.
func (r TextRange) ContainsRange(other TextRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// Cover returns the smallest range containing both r and other.
func (r TextRange) Cover(other TextRange) TextRange {
	start := r.Start
	if other.Start < start {
		start = other.Start
	}
	end := r.End
	if other.End > end {
		end = other.End
	}
	return TextRange{Start: start, End: end}
}

// Shift translates the range by the given offset.
func (r TextRange) Shift(by TextSize) TextRange {
	return TextRange{Start: r.Start + by, End: r.End + by}
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
