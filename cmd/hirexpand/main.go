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

// Command hirexpand is a small diagnostic front end over this module's
// macro-expansion core: its expand subcommand runs the stringify or
// concat built-in over literal arguments given on the command line and
// prints the text of each output leaf; its version subcommand prints the
// version. It does not read source files or macro definitions.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/macrohost/hirexpand/cmd/hirexpand/internal/cli"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()

	if err := cli.NewRootCmd(log).Execute(); err != nil {
		log.Fatal().Err(err).Msg("hirexpand failed")
	}
}
