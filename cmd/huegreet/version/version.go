/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package version

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	appversion "huegreet/internal/version"

	"github.com/spf13/cobra"
)

var flagJSON bool

var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI version",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagJSON {
			_, err := fmt.Fprintf(os.Stdout, "huegreet %s\n", appversion.String())
			return err
		}
		out := map[string]any{
			"version":   appversion.Version,
			"commit":    appversion.Commit,
			"date":      appversion.Date,
			"go":        runtime.Version(),
			"go_os":     runtime.GOOS,
			"go_arch":   runtime.GOARCH,
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		}
		return encodeJSON(os.Stdout, out)
	},
}

func init() {
	Cmd.Flags().BoolVar(&flagJSON, "json", false, "Print detailed JSON version info")
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
