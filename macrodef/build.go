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
	"github.com/macrohost/hirexpand/bridge"
	"github.com/macrohost/hirexpand/expanderr"
	"github.com/macrohost/hirexpand/syntax"
	"github.com/macrohost/hirexpand/tt"
)

// BuildDeclarative converts a macro_rules!-style definition item's
// syntax into a Declarative expander. defItem's token-tree form is
// expected to be a brace-delimited body subtree directly containing one
// or more "(pattern) => (body) ;" arms, the shape mbe's own definition
// parser expects; this is deliberately the minimal arm grammar needed
// to exercise the matcher in package macrodef, not a full reproduction
// of every macro_rules! arm-separator variant. parseArm takes the first
// two delimited subtrees of each arm as pattern and body, whatever their
// delimiter, and does not check the "=>" between them.
func BuildDeclarative(defItem *syntax.Node) (*Declarative, *expanderr.ExpandError) {
	whole, defMap := bridge.SyntaxToTokenTree(defItem, nil)
	body := findDefBody(whole)
	if body == nil {
		return nil, expanderr.NewConversionError("macro_rules! definition has no body subtree")
	}

	var rules []Rule
	for _, frag := range bridge.SplitOnSeparator(body, ';') {
		rule, ok := parseArm(frag)
		if !ok {
			continue
		}
		rules = append(rules, rule)
	}
	if len(rules) == 0 {
		return nil, expanderr.NewConversionError("macro_rules! definition declared no usable rules")
	}
	return NewDeclarative(rules, defMap), nil
}

// findDefBody locates the outermost brace-delimited subtree, which by
// convention holds the macro's arms (whatever precedes it — the
// "macro_rules", the macro's own name, a "!" — is definition
// boilerplate this matcher has no use for).
func findDefBody(whole *tt.Subtree) *tt.Subtree {
	if whole.Delimiter == tt.DelimBrace {
		return whole
	}
	for _, child := range whole.TokenTrees {
		if sub, ok := child.(*tt.Subtree); ok {
			if sub.Delimiter == tt.DelimBrace {
				return sub
			}
			if found := findDefBody(sub); found != nil {
				return found
			}
		}
	}
	return nil
}

// parseArm reads one "(pattern) => (body)" arm (the trailing ";" has
// already been stripped by SplitOnSeparator) out of frag's tokens.
func parseArm(frag *tt.Subtree) (Rule, bool) {
	var pattern, body *tt.Subtree
	for _, child := range frag.TokenTrees {
		sub, ok := child.(*tt.Subtree)
		if !ok {
			continue
		}
		if pattern == nil {
			pattern = sub
		} else if body == nil {
			body = sub
			break
		}
	}
	if pattern == nil || body == nil {
		return Rule{}, false
	}
	return Rule{Pattern: pattern, Body: body}, true
}
