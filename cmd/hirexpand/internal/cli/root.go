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

// Package cli wires this module's components into a small cobra command
// tree, kept separate from package main so it can be unit tested without
// spawning a process.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the hirexpand command tree.
func NewRootCmd(log zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "hirexpand",
		Short:         "Inspect macro expansion of hand-built token trees",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExpandCmd(log))
	root.AddCommand(newVersionCmd())
	return root
}
