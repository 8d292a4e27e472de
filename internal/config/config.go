/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the
// user scope. Environment variables are treated as read-only overrides at
// runtime. Storage paths are plain values handed to the backend constructors,
// so tests can point them anywhere.

type StorageConfig struct {
	// KVPath is the embedded key-value database file tried first.
	KVPath string `yaml:"kv_path"`
	// DocumentPath is the JSON settings document used as fallback.
	DocumentPath string `yaml:"document_path"`
}

type GeneralConfig struct {
	TelemetryOptIn bool `yaml:"telemetry_opt_in"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Storage       StorageConfig `yaml:"storage"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults. Storage paths are left empty here
// and resolved against the user config dir at Load time.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false},
		Logging:       LoggingConfig{Level: "warn", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvKVPath         = "HUE_KV_PATH"
	EnvDocumentPath   = "HUE_DOCUMENT_PATH"
	EnvTelemetryOptIn = "HUE_TELEMETRY_OPT_IN"
	EnvLogLevel       = "HUE_LOG_LEVEL"
	EnvLogFormat      = "HUE_LOG_FORMAT"
	EnvLogSource      = "HUE_LOG_SOURCE"
	EnvLogFile        = "HUE_LOG_FILE"
)

const (
	ConfigFileName       = "config.yaml"
	kvStoreFileName      = "settings.db"
	settingsDocumentName = "settings.json"
)

// ConfigDir returns the per-user directory holding config and settings files.
func ConfigDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Huegreet")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "huegreet")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "huegreet")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load reads the user config file (if present), applies defaults, merges
// environment overrides, and resolves any storage paths that are still empty
// against the user config dir.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	if err := resolveStoragePaths(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func resolveStoragePaths(cfg *AppConfig) error {
	if cfg.Storage.KVPath != "" && cfg.Storage.DocumentPath != "" {
		return nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if cfg.Storage.KVPath == "" {
		cfg.Storage.KVPath = filepath.Join(dir, kvStoreFileName)
	}
	if cfg.Storage.DocumentPath == "" {
		cfg.Storage.DocumentPath = filepath.Join(dir, settingsDocumentName)
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if strings.TrimSpace(src.Storage.KVPath) != "" {
		dst.Storage.KVPath = strings.TrimSpace(src.Storage.KVPath)
	}
	if strings.TrimSpace(src.Storage.DocumentPath) != "" {
		dst.Storage.DocumentPath = strings.TrimSpace(src.Storage.DocumentPath)
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvKVPath)); v != "" {
		cfg.Storage.KVPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDocumentPath)); v != "" {
		cfg.Storage.DocumentPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}
