/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package options turns raw command-line tokens into a typed option set.
// Parsing is non-strict: unknown flags and stray positionals are ignored
// instead of failing the run.
package options

import (
	"io"

	"github.com/spf13/pflag"
)

// Set is the resolved option set for one invocation. HasName/HasColor
// distinguish "flag absent" from "flag given with an empty value".
type Set struct {
	Help     bool
	Save     bool
	Name     string
	Color    string
	HasName  bool
	HasColor bool
}

// Resolve parses tokens into a Set. It performs no I/O and never consults
// the environment. A flag given without its value argument is the only
// parse failure.
func Resolve(tokens []string) (Set, error) {
	fs := pflag.NewFlagSet("huegreet", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	help := fs.BoolP("help", "h", false, "show usage")
	save := fs.BoolP("save", "s", false, "persist the name/color pair")
	name := fs.StringP("name", "n", "", "name to greet")
	color := fs.StringP("color", "c", "", "color to greet in")

	if err := fs.Parse(tokens); err != nil {
		return Set{}, err
	}
	return Set{
		Help:     *help,
		Save:     *save,
		Name:     *name,
		Color:    *color,
		HasName:  fs.Changed("name"),
		HasColor: fs.Changed("color"),
	}, nil
}

// Usage is the help text printed on --help and referenced by usage errors.
const Usage = `huegreet greets you by name in your favorite color.

Usage:
  huegreet --save [--name <name>] [--color <color>]
  huegreet version

Flags:
  -h, --help           show this help and exit
  -s, --save           persist the name/color pair (required to greet)
  -n, --name <name>    name to greet; prompted for when absent
  -c, --color <color>  color to greet in; falls back to the saved color,
                       then to a prompt

Saved pairs are reused on later runs: with --name alone, the color last
saved for that name is applied automatically.
`
