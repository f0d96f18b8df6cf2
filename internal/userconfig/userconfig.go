// Package userconfig reads and writes the shared apimesh config file, a plain
// JSON object that other parts of the tool also store keys in. Everything here
// is best-effort: a missing or corrupt file reads as empty, and write failures
// are ignored, so this package can never take the CLI down with it.
package userconfig

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// InstallIDKey is the config field holding the anonymous installation id.
const InstallIDKey = "telemetry_install_id"

// Load reads the JSON object at path. Any failure (missing file, unreadable,
// malformed JSON) yields an empty object.
func Load(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]any{}
	}

	var cfg map[string]any
	if err := json.Unmarshal(data, &cfg); err != nil || cfg == nil {
		return map[string]any{}
	}
	return cfg
}

// Save writes cfg to path, creating parent directories as needed. Keys not
// owned by this package round-trip untouched through Load and Save.
func Save(path string, cfg map[string]any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// GetOrCreateInstallID returns the persisted installation id, minting and
// persisting a fresh random UUID on first use. The id is never derived from
// machine identity. If the write fails the new id is still returned; it just
// won't survive this process.
//
// Known race: two processes on a fresh install can each mint an id and the
// last write wins. The lost update is accepted rather than locked around.
func GetOrCreateInstallID(path string) string {
	cfg := Load(path)
	if id, ok := cfg[InstallIDKey].(string); ok && id != "" {
		return id
	}

	id := uuid.New().String()
	cfg[InstallIDKey] = id
	_ = Save(path, cfg)
	return id
}
