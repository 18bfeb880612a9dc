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

package bridge

import "github.com/macrohost/hirexpand/tt"

// SplitOnSeparator implements spec.md §4.E's "Splitting on a separator":
// given a subtree and a separator character (e.g. ',' for macro call
// arguments), produce a sequence of sub-subtrees, one per
// comma-separated fragment, with a final trailing fragment if the input
// doesn't end on a separator.
//
// The real bridge drives the grammar's expression-fragment parser to
// find each split point, so that a separator character nested inside a
// fragment (e.g. inside a parenthesized sub-expression) is not mistaken
// for a top-level separator; this implementation achieves the same
// result without a grammar by only ever looking at sub's direct
// children, where nested subtrees (already grouped by the delimiter
// stack in SyntaxToTokenTree) can never contain a stray top-level
// separator themselves.
func SplitOnSeparator(sub *tt.Subtree, separator byte) []*tt.Subtree {
	var out []*tt.Subtree
	cur := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
	sawAny := false
	for _, child := range sub.TokenTrees {
		if leaf, ok := child.(*tt.Leaf); ok && leaf.Kind == tt.LeafPunct && leaf.Text == string(separator) {
			out = append(out, cur)
			cur = tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
			sawAny = true
			continue
		}
		cur.Push(child)
		sawAny = true
	}
	if len(cur.TokenTrees) > 0 || !sawAny {
		out = append(out, cur)
	}
	return out
}
