/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package version exposes build metadata stamped at link time.
package version

import "strings"

// These are overridden via ldflags, e.g.:
//
//	-ldflags "-X 'huegreet/internal/version.Version=1.2.3' -X 'huegreet/internal/version.Commit=abc1234'"
var (
	Version = "0.0.0-dev"
	Commit  = ""
	Date    = ""
)

// String returns a single human-readable version line.
func String() string {
	parts := []string{Version}
	if Commit != "" {
		parts = append(parts, Commit)
	}
	if Date != "" {
		parts = append(parts, Date)
	}
	return strings.Join(parts, " ")
}
