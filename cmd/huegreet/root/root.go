/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package root

import (
	"os"

	"huegreet/cmd/huegreet/version"
	"huegreet/internal/config"
	"huegreet/internal/greet"
	applog "huegreet/internal/log"
	"huegreet/internal/telemetry"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for huegreet.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "huegreet",
		Short: "Greets you by name in your favorite color, and remembers both",
		// Raw tokens flow to the session's resolver, which treats unknown
		// flags as noise instead of errors.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applog.Init(applog.Options{
				Level:     cfg.Logging.Level,
				Format:    cfg.Logging.Format,
				AddSource: cfg.Logging.Source,
				File:      cfg.Logging.File,
			})
			tcfg := telemetry.FromEnv()
			tcfg.OptIn = tcfg.OptIn || cfg.General.TelemetryOptIn
			telemetry.NewDefault(tcfg)
			telemetry.Event("app_start", nil)

			sess := greet.New(cfg, greet.NewStdinPrompter(os.Stdin, os.Stdout), os.Stdout)
			return sess.Run(args)
		},
	}

	cmd.AddCommand(version.Cmd)

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
