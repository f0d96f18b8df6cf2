package userconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func configPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "apimesh", "config.json")
}

func TestGetOrCreateInstallIDIsIdempotent(t *testing.T) {
	path := configPath(t)

	first := GetOrCreateInstallID(path)
	if first == "" {
		t.Fatal("expected a non-empty install id on first call")
	}

	for i := 0; i < 3; i++ {
		if got := GetOrCreateInstallID(path); got != first {
			t.Errorf("call %d returned %q, want the original id %q", i+2, got, first)
		}
	}
}

func TestGetOrCreateInstallIDPreservesOtherKeys(t *testing.T) {
	path := configPath(t)

	if err := Save(path, map[string]any{
		"workspace":   "demo",
		"max_retries": float64(3),
	}); err != nil {
		t.Fatalf("failed to seed config: %v", err)
	}

	id := GetOrCreateInstallID(path)

	cfg := Load(path)
	if cfg["workspace"] != "demo" {
		t.Errorf("workspace = %v, want \"demo\"", cfg["workspace"])
	}
	if cfg["max_retries"] != float64(3) {
		t.Errorf("max_retries = %v, want 3", cfg["max_retries"])
	}
	if cfg[InstallIDKey] != id {
		t.Errorf("persisted id = %v, want %q", cfg[InstallIDKey], id)
	}
}

func TestGetOrCreateInstallIDCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "config.json")

	id := GetOrCreateInstallID(path)

	if got := GetOrCreateInstallID(path); got != id {
		t.Errorf("id not persisted through nested directories: got %q, want %q", got, id)
	}
}

func TestGetOrCreateInstallIDSurvivesUnwritablePath(t *testing.T) {
	// Parent "directory" is a regular file, so the write must fail.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	id := GetOrCreateInstallID(filepath.Join(blocker, "config.json"))
	if id == "" {
		t.Error("expected a session-scoped id even when the write fails")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.json"))
	if len(cfg) != 0 {
		t.Errorf("expected empty config for a missing file, got %v", cfg)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if len(cfg) != 0 {
		t.Errorf("expected empty config for malformed JSON, got %v", cfg)
	}

	// A fresh id must still come out of the corrupt file.
	if id := GetOrCreateInstallID(path); id == "" {
		t.Error("expected an install id despite malformed config")
	}
}

func TestSaveWritesValidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := Save(path, map[string]any{"k": "v"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var roundtrip map[string]any
	if err := json.Unmarshal(data, &roundtrip); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}
}
