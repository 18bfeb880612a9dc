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

package hirfile

import "github.com/macrohost/hirexpand/syntax"

// InferExpandTo determines the ExpandTo category for a function-like
// macro call from the syntax context it appears in (spec.md §4.A, §8
// Scenario 5): a statement position expands to Statements; inside an
// expression (a call argument, a return value, an operand) expands to
// Expr; under a pattern or type macro-call wrapper expands to Pattern or
// Type respectively; at the top of a file or item list expands to Items;
// anything else defaults to Items, matching the original's conservative
// fallback.
func InferExpandTo(call *syntax.Node) ExpandTo {
	parent := call.Parent()
	for parent != nil {
		switch parent.Kind {
		case syntax.EXPR_STMT, syntax.STMT_LIST:
			return ExpandStatements
		case syntax.CALL_EXPR, syntax.RETURN_EXPR, syntax.BIN_EXPR,
			syntax.BLOCK_EXPR, syntax.LET_STMT:
			return ExpandExpr
		case syntax.MACRO_PAT:
			return ExpandPattern
		case syntax.MACRO_TYPE:
			return ExpandType
		case syntax.SOURCE_FILE, syntax.ITEM_LIST:
			return ExpandItems
		}
		parent = parent.Parent()
	}
	return ExpandItems
}
