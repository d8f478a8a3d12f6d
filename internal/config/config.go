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
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the
// user scope. Environment variables are treated as read-only overrides at
// runtime. The roster database DSN is not stored on disk; it lives in the OS
// keychain.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type RosterConfig struct {
	TimeoutMs int `yaml:"timeout_ms"`
	// DSN is not stored on disk; it lives in the OS keychain.
}

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark" (informational for now)
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
	Roster        RosterConfig  `yaml:"roster"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		Roster:        RosterConfig{TimeoutMs: 5000},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvRosterDSN       = "PB_ROSTER_DSN"
	EnvRosterTimeoutMs = "PB_ROSTER_TIMEOUT_MS"
	EnvTelemetryOptIn  = "PB_TELEMETRY_OPT_IN"
	// Logging envs
	EnvLogLevel  = "PB_LOG_LEVEL"
	EnvLogFormat = "PB_LOG_FORMAT"
	EnvLogSource = "PB_LOG_SOURCE"
	EnvLogFile   = "PB_LOG_FILE"
)

// Service/keys for the OS keyring.
const (
	keyringService = "Playboard"
	keyringDSN     = "roster_dsn"
)

// SecretStore abstracts the keyring, so tests can stub it.
type SecretStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// secretStore is swapped for a fake in tests.
var secretStore SecretStore = osKeyring{}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Playboard")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Playboard")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "playboard")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// DataDir returns the per-user directory holding the play database and
// exports, falling back to a temp location when no home is resolvable.
func DataDir() string {
	if p, err := ConfigPath(); err == nil {
		return filepath.Dir(p)
	}
	return filepath.Join(os.TempDir(), "playboard")
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. The roster DSN is loaded from the keyring (or the
// PB_ROSTER_DSN override) and returned separately from the struct.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	dsn := strings.TrimSpace(os.Getenv(EnvRosterDSN))
	if dsn == "" {
		dsn, _ = secretStore.Get(keyringService, keyringDSN)
	}
	return cfg, dsn, nil
}

// Save writes the user config YAML and persists the roster DSN into the OS
// keyring (if non-empty).
func Save(cfg AppConfig, dsn string) error {
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
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if dsn != "" {
		if err := secretStore.Set(keyringService, keyringDSN, dsn); err != nil {
			return err
		}
	}
	return nil
}

// ForgetDSN removes the stored roster DSN from the keyring.
func ForgetDSN() error { return secretStore.Delete(keyringService, keyringDSN) }

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if src.Roster.TimeoutMs != 0 {
		dst.Roster.TimeoutMs = src.Roster.TimeoutMs
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
	if v := strings.TrimSpace(os.Getenv(EnvRosterTimeoutMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Roster.TimeoutMs = n
		}
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
