/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package settings

import (
	"log/slog"

	applog "huegreet/internal/log"
)

// Backend names reported by Select.
const (
	BackendKeyValue = "keyvalue"
	BackendDocument = "document"
)

// Selection is the outcome of the capability probe: the store to use for
// the rest of the run, a fresh snapshot of its contents, and which backend
// variant was picked.
type Selection struct {
	Store    Store
	Snapshot Map
	Backend  string
}

// Select probes the key-value backend once (open, then enumerate) and on
// any failure discards the attempt and loads from the document backend
// instead. The chosen store handles the subsequent save for that run; no
// mixing, no retry. Probe failures are logged at debug and never surfaced.
func Select(kvPath, documentPath string) (Selection, error) {
	l := applog.WithOperation(applog.WithComponent("settings"), "select_backend")

	kv, err := OpenKV(kvPath)
	if err == nil {
		m, lerr := kv.LoadAll()
		if lerr == nil {
			l.Debug("key-value backend selected", slog.String("path", kvPath))
			return Selection{Store: kv, Snapshot: m, Backend: BackendKeyValue}, nil
		}
		_ = kv.Close()
		l.Debug("key-value backend enumerate failed", slog.Any("err", lerr))
	} else {
		l.Debug("key-value backend unavailable", slog.Any("err", err))
	}

	doc := NewDocument(documentPath)
	m, err := doc.LoadAll()
	if err != nil {
		return Selection{}, err
	}
	l.Debug("document backend selected", slog.String("path", documentPath))
	return Selection{Store: doc, Snapshot: m, Backend: BackendDocument}, nil
}
