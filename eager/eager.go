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

// Package eager implements spec.md's component I: the handful of
// built-ins (include!, concat!, env!, and friends) whose argument must
// be seen only after it has itself been fully expanded, unlike every
// other macro call, whose argument is handed to the expander exactly as
// written. This package records an argument tree that the caller has
// already expanded (PreExpandArg) and resolves include!-style file
// redirection; it does not itself find or expand macro calls inside an
// argument, and package expand does not consult EagerCallInfo.
package eager

import (
	"github.com/macrohost/hirexpand/common"
	"github.com/macrohost/hirexpand/expand"
	"github.com/macrohost/hirexpand/hirfile"
	"github.com/macrohost/hirexpand/tt"
)

// PreExpandArg stores expanded as info.Post so later calls to
// (*hirfile.EagerCallInfo).ArgOrExpansion see the expanded form. It
// performs no expansion itself: expanded is the argument tree after the
// caller has already expanded the macro calls inside it.
func PreExpandArg(info *hirfile.EagerCallInfo, expanded *tt.Subtree) {
	info.Post = expanded
}

// IncludedFileContents resolves an include!-like call's already-run
// eager expansion into the FileId it names, honoring spec.md §4.I's
// "when included_file is set, original_file redirects through it".
// ok is false for a call that isn't an include (HasIncludedFile unset).
func IncludedFileContents(e *expand.Engine, info *hirfile.EagerCallInfo) (common.FileId, bool) {
	if !info.HasIncludedFile {
		return common.NoFileId, false
	}
	return info.IncludedFile, true
}

// ResolveOriginalFile is eager's contribution to hirfile.OriginalFile:
// given a HirFileId, redirect through an eager call's included file if
// present, otherwise defer to the ordinary parent-chain walk. Exposed
// here (rather than solely as the unexported redirect inside
// hirfile.OriginalFile) so package ascend can special-case an included
// file's positions without reaching into hirfile internals.
func ResolveOriginalFile(locs hirfile.LocSource, h hirfile.HirFileId) common.FileId {
	return hirfile.OriginalFile(locs, h)
}
