/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package greet

import (
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/gookit/color"
)

// greetings is the static corpus; one entry is picked uniformly per run.
var greetings = []string{
	"Hello",
	"Hi there",
	"Greetings",
	"Welcome back",
	"Good to see you",
	"Howdy",
	"Salutations",
	"Well met",
	"Ahoy",
	"Pleased to see you",
}

func pickGreeting() string {
	return greetings[rand.Intn(len(greetings))]
}

// fgPalette merges gookit's basic and extended foreground maps under
// normalized names, so "lightBlue", "light blue" and "light-blue" all hit
// the same entry.
var fgPalette = func() map[string]color.Color {
	p := make(map[string]color.Color, len(color.FgColors)+len(color.ExFgColors))
	for name, c := range color.FgColors {
		p[normalizeColorName(name)] = c
	}
	for name, c := range color.ExFgColors {
		p[normalizeColorName(name)] = c
	}
	return p
}()

// normalizeColorName lowercases and strips everything but letters.
func normalizeColorName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Render writes the styled greeting line. Color names outside the terminal
// palette degrade to plain text rather than failing the run.
func Render(w io.Writer, greeting, name, colorName string) {
	line := fmt.Sprintf("%s, %s!", greeting, name)
	if c, ok := fgPalette[normalizeColorName(colorName)]; ok {
		line = c.Render(line)
	}
	fmt.Fprintln(w, line)
}
