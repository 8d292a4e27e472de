/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package greet

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// StdinPrompter asks on w and reads one line per question from r. It blocks
// until input arrives; there is no timeout or cancellation.
type StdinPrompter struct {
	br *bufio.Reader
	w  io.Writer
}

func NewStdinPrompter(r io.Reader, w io.Writer) *StdinPrompter {
	return &StdinPrompter{br: bufio.NewReader(r), w: w}
}

func (p *StdinPrompter) Prompt(message string) (string, error) {
	if _, err := fmt.Fprintf(p.w, "%s ", message); err != nil {
		return "", err
	}
	line, err := p.br.ReadString('\n')
	// A final unterminated line still counts as an answer.
	if err != nil && strings.TrimSpace(line) == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
