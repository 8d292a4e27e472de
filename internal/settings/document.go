/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema constrains the settings file to a flat object of
// name->color strings before it is trusted.
const documentSchema = `{"type":"object","additionalProperties":{"type":"string"}}`

// DocumentStore is the fallback backend: the entire settings map lives in
// one pretty-printed JSON document. Saves are full read-modify-write; the
// file replace is atomic but the read/write pair is not, so a concurrent
// external writer can be lost. Acceptable for a single-user CLI.
type DocumentStore struct {
	path string
}

// NewDocument returns a document backend rooted at path. The file is not
// touched until LoadAll or Save.
func NewDocument(path string) *DocumentStore {
	return &DocumentStore{path: path}
}

// LoadAll reads and parses the whole document. A missing file is the
// expected first-run state and yields an empty map; every other failure
// propagates.
func (s *DocumentStore) LoadAll() (Map, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Map{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings document: %w", err)
	}
	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewBytesLoader(b),
	)
	if err != nil {
		return nil, fmt.Errorf("parse settings document %s: %w", s.path, err)
	}
	if !res.Valid() {
		return nil, fmt.Errorf("settings document %s: %s", s.path, res.Errors()[0])
	}
	var m Map
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse settings document %s: %w", s.path, err)
	}
	if m == nil {
		m = Map{}
	}
	return m, nil
}

// Save loads the current map, applies the single upsert, and rewrites the
// whole document.
func (s *DocumentStore) Save(name, color string) error {
	m, err := s.LoadAll()
	if err != nil {
		return err
	}
	m[name] = color

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings document: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	// Write to temp file in the same directory, then rename over target.
	dir := filepath.Dir(s.path)
	base := filepath.Base(s.path)
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", base, os.Getpid(), rand.Int()))
	if err := writeFileSync(temp, data); err != nil {
		return fmt.Errorf("write temp settings document: %w", err)
	}
	if err := os.Rename(temp, s.path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace settings document: %w", err)
	}
	return nil
}

// Path returns the document file location.
func (s *DocumentStore) Path() string { return s.path }

// writeFileSync writes data to a file and ensures it is flushed to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
