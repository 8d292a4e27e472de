/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package greet runs one greeting session: it resolves the option set,
// picks a storage backend, fills in name and color from flags, saved
// settings or the operator, persists the pair and renders the greeting.
package greet

import (
	"fmt"
	"io"
	"strings"

	"huegreet/internal/config"
	"huegreet/internal/options"
	"huegreet/internal/settings"
	"huegreet/internal/telemetry"
)

// Prompter blocks until the operator answers the given question.
type Prompter interface {
	Prompt(message string) (string, error)
}

// Session wires one run together. Stdout carries the greeting and usage
// text; diagnostics go through the logger, never here.
type Session struct {
	KVPath       string
	DocumentPath string
	Prompter     Prompter
	Stdout       io.Writer
}

// New builds a session from the loaded application config.
func New(cfg config.AppConfig, p Prompter, stdout io.Writer) *Session {
	return &Session{
		KVPath:       cfg.Storage.KVPath,
		DocumentPath: cfg.Storage.DocumentPath,
		Prompter:     p,
		Stdout:       stdout,
	}
}

const exitCodeUsage = 1

// usageError aborts the run with a failure status without touching storage.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }
func (e usageError) ExitCode() int { return exitCodeUsage }

// Run executes the session state machine for one invocation. The returned
// error may carry an exit code for the process wrapper.
func (s *Session) Run(tokens []string) error {
	set, err := options.Resolve(tokens)
	if err != nil {
		return usageError{msg: err.Error()}
	}

	if set.Help {
		_, err := io.WriteString(s.Stdout, options.Usage)
		return err
	}
	// Greeting without --save is a usage error: the tool's contract is
	// "greet and remember", not "greet".
	if !set.Save {
		return usageError{msg: "missing required flag: --save (run with --help for usage)"}
	}

	sel, err := settings.Select(s.KVPath, s.DocumentPath)
	if err != nil {
		return err
	}
	if c, ok := sel.Store.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	telemetry.Event("backend_selected", map[string]any{"backend": sel.Backend})

	// A flag given with a blank value is treated like an absent flag: there
	// is nothing usable to greet with, so the prompt fallback applies.
	var name string
	if set.HasName {
		name = strings.TrimSpace(set.Name)
	}
	if name == "" {
		name, err = s.Prompter.Prompt("What is your name?")
		if err != nil {
			return fmt.Errorf("read name: %w", err)
		}
	}

	var color string
	if set.HasColor {
		color = strings.TrimSpace(set.Color)
	}
	if color == "" {
		if saved, ok := sel.Snapshot[name]; ok {
			color = saved
		} else {
			color, err = s.Prompter.Prompt("What is your favorite color?")
			if err != nil {
				return fmt.Errorf("read color: %w", err)
			}
		}
	}

	if err := sel.Store.Save(name, color); err != nil {
		return err
	}
	telemetry.Event("settings_saved", map[string]any{"backend": sel.Backend})

	Render(s.Stdout, pickGreeting(), name, color)
	return nil
}
