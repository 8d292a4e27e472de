/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package settings persists name->color associations across runs.
// Two backends implement the same contract: an embedded SQLite key-value
// store tried first, and a flat JSON document used as fallback. The backend
// is picked once per run by an explicit capability probe; the in-memory map
// is a disposable snapshot, the backend file is the durable owner.
package settings

import "errors"

// Map is the in-memory snapshot of all known name->color associations for
// one run. It is loaded fresh from the active backend and never cached
// across runs.
type Map map[string]string

// Store is the contract shared by both backends.
type Store interface {
	// LoadAll materializes every stored association. A backend with no
	// prior data yields an empty map, not an error.
	LoadAll() (Map, error)
	// Save upserts a single association, overwriting any prior color for
	// that name. The write is durable when Save returns.
	Save(name, color string) error
}

// ErrBackendUnavailable marks a key-value backend that cannot be opened or
// enumerated. It is recovered transparently by falling back to the document
// backend and is never shown to the operator.
var ErrBackendUnavailable = errors.New("key-value backend unavailable")
