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
	"testing"
)

// fakeSecrets keeps keyring entries in-memory so tests never touch the OS keychain.
type fakeSecrets map[string]string

func (f fakeSecrets) Get(service, key string) (string, error) { return f[service+"/"+key], nil }
func (f fakeSecrets) Set(service, key, value string) error {
	f[service+"/"+key] = value
	return nil
}
func (f fakeSecrets) Delete(service, key string) error {
	delete(f, service+"/"+key)
	return nil
}

func stubSecrets(t *testing.T) fakeSecrets {
	t.Helper()
	old := secretStore
	f := fakeSecrets{}
	secretStore = f
	t.Cleanup(func() { secretStore = old })
	return f
}

func TestEnvOverridesRosterDSN(t *testing.T) {
	stubSecrets(t)
	t.Setenv(EnvRosterDSN, "postgres://coach@example.test/roster")
	_, dsn, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if want := "postgres://coach@example.test/roster"; dsn != want {
		t.Fatalf("dsn = %q, want %q", dsn, want)
	}
}

func TestDSNFallsBackToKeyring(t *testing.T) {
	f := stubSecrets(t)
	t.Setenv(EnvRosterDSN, "")
	f[keyringService+"/"+keyringDSN] = "postgres://stored@db/roster"
	_, dsn, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if dsn != "postgres://stored@db/roster" {
		t.Fatalf("dsn not read from keyring: %q", dsn)
	}
}

func TestEnvOverridesTelemetry(t *testing.T) {
	stubSecrets(t)
	t.Setenv(EnvTelemetryOptIn, "true")
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.General.TelemetryOptIn {
		t.Fatalf("General.TelemetryOptIn expected true from env override")
	}
}

func TestMergeIncludesRosterTimeout(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Roster.TimeoutMs = 12000
	mergeInto(&dst, &src)
	if dst.Roster.TimeoutMs != 12000 {
		t.Fatalf("Roster.TimeoutMs was not merged from file config")
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/pb.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/pb.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	stubSecrets(t)
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/tmp/pb-env.log")
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/pb-env.log" {
		t.Fatalf("logging env overrides not applied: %#v", cfg.Logging)
	}
}
