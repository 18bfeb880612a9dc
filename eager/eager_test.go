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

package eager

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macrohost/hirexpand/common"
	"github.com/macrohost/hirexpand/hirfile"
	"github.com/macrohost/hirexpand/tt"
)

func TestPreExpandArgSetsPost(t *testing.T) {
	pre := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	info := &hirfile.EagerCallInfo{Pre: pre}
	assert.Same(t, pre, info.ArgOrExpansion())

	expanded := tt.NewSubtree(tt.DelimParen, tt.NoTokenId)
	PreExpandArg(info, expanded)

	assert.Same(t, expanded, info.Post)
	assert.Same(t, expanded, info.ArgOrExpansion())
}

func TestIncludedFileContentsRequiresIncludedFile(t *testing.T) {
	info := &hirfile.EagerCallInfo{}
	_, ok := IncludedFileContents(nil, info)
	assert.False(t, ok)

	info.HasIncludedFile = true
	info.IncludedFile = common.FileId(42)
	got, ok := IncludedFileContents(nil, info)
	assert.True(t, ok)
	assert.Equal(t, common.FileId(42), got)
}

func TestResolveOriginalFileRedirectsThroughIncludedFile(t *testing.T) {
	in := hirfile.NewInterner()
	loc := hirfile.MacroCallLoc{
		Kind: hirfile.MacroCallKind{Tag: hirfile.FnLike},
		Eager: &hirfile.EagerCallInfo{
			HasIncludedFile: true,
			IncludedFile:    common.FileId(9),
		},
	}
	callId := in.Intern(loc)

	got := ResolveOriginalFile(in, hirfile.Expansion(callId))
	assert.Equal(t, common.FileId(9), got)
}

func TestResolveOriginalFileWalksToRealFileWithoutInclude(t *testing.T) {
	in := hirfile.NewInterner()
	got := ResolveOriginalFile(in, hirfile.Real(common.FileId(3)))
	assert.Equal(t, common.FileId(3), got)
}
