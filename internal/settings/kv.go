/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package settings

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

// EnvNoKVStore disables the key-value backend entirely, forcing the
// document fallback. Useful for support and for exercising the fallback
// path end to end.
const EnvNoKVStore = "HUE_NO_KVSTORE"

const kvOpenTimeout = 5 * time.Second

// KVStore is the embedded key-value backend. Each association is a single
// row keyed by name, so saves touch one record instead of rewriting the
// whole settings file.
type KVStore struct {
	db   *sql.DB
	path string
}

// OpenKV opens (creating if needed) the key-value database at path and
// ensures its schema. Every failure is wrapped in ErrBackendUnavailable;
// callers are expected to fall back rather than surface it.
func OpenKV(path string) (*KVStore, error) {
	if v := strings.ToLower(strings.TrimSpace(os.Getenv(EnvNoKVStore))); v == "1" || v == "true" || v == "on" || v == "yes" {
		return nil, fmt.Errorf("%w: disabled via %s", ErrBackendUnavailable, EnvNoKVStore)
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrBackendUnavailable)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create dir: %v", ErrBackendUnavailable, err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", ErrBackendUnavailable, err)
	}
	// Single connection; the store lives for one run.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), kvOpenTimeout)
	defer cancel()
	// First statement against the handle; this is where a missing driver,
	// unwritable file or corrupt database actually shows up.
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS settings (
		name  TEXT PRIMARY KEY,
		color TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ensure schema: %v", ErrBackendUnavailable, err)
	}
	return &KVStore{db: db, path: path}, nil
}

// LoadAll enumerates all stored records. A freshly created store yields an
// empty map.
func (s *KVStore) LoadAll() (Map, error) {
	ctx, cancel := context.WithTimeout(context.Background(), kvOpenTimeout)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, `SELECT name, color FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("%w: enumerate: %v", ErrBackendUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	m := Map{}
	for rows.Next() {
		var name, color string
		if err := rows.Scan(&name, &color); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrBackendUnavailable, err)
		}
		m[name] = color
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: enumerate: %v", ErrBackendUnavailable, err)
	}
	return m, nil
}

// Save upserts one record keyed by name.
func (s *KVStore) Save(name, color string) error {
	ctx, cancel := context.WithTimeout(context.Background(), kvOpenTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings(name, color) VALUES(?, ?)
		 ON CONFLICT(name) DO UPDATE SET color = excluded.color`,
		name, color)
	if err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	return nil
}

// Path returns the database file location.
func (s *KVStore) Path() string { return s.path }

// Close releases the database handle.
func (s *KVStore) Close() error { return s.db.Close() }
