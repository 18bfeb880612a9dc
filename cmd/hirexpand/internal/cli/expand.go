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

package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/macrohost/hirexpand/macrodef"
	"github.com/macrohost/hirexpand/tt"
)

// newExpandCmd exercises one of the built-in function-like expanders
// (package macrodef) directly against a literal comma-separated
// argument list, without needing a real source file or incremental
// engine behind it. This module ships no production grammar parser
// (spec.md §1 assumes one as a collaborator), so this is deliberately
// the smallest useful surface: run one named built-in over literal
// arguments and print what it produces.
func newExpandCmd(log zerolog.Logger) *cobra.Command {
	var macroName string

	cmd := &cobra.Command{
		Use:   "expand [args...]",
		Short: "Run a built-in function-like macro over literal string arguments",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := tt.NewSubtree(tt.DelimNone, tt.NoTokenId)
			for i, a := range args {
				if i > 0 {
					input.Push(tt.NewPunct(',', tt.Alone, tt.NoTokenId))
				}
				input.Push(tt.NewLiteral(quoteArg(a), tt.NoTokenId))
			}

			var fn macrodef.BuiltinFn
			switch macroName {
			case "stringify":
				fn = macrodef.Stringify
			case "concat":
				fn = macrodef.Concat
			default:
				return fmt.Errorf("unknown built-in macro %q (want stringify or concat)", macroName)
			}

			log.Debug().Str("macro", macroName).Int("args", len(args)).Msg("expanding")
			result := fn(input, nil)
			if !result.Ok() {
				return result.Err
			}
			for _, leaf := range result.Value.TokenTrees {
				if l, ok := leaf.(*tt.Leaf); ok {
					fmt.Fprintln(cmd.OutOrStdout(), l.Text)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&macroName, "macro", "stringify", "built-in macro to run: stringify or concat")
	return cmd
}

func quoteArg(s string) string {
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s
	}
	return `"` + s + `"`
}
