package paths

import (
	"path/filepath"
	"testing"
)

func TestUserConfigPathDefault(t *testing.T) {
	t.Setenv("APIMESH_USER_CONFIG_PATH", "")

	if got, want := UserConfigPath(), filepath.Join("apimesh", "config.json"); got != want {
		t.Errorf("UserConfigPath() = %q, want %q", got, want)
	}
}

func TestUserConfigPathOverride(t *testing.T) {
	t.Setenv("APIMESH_USER_CONFIG_PATH", "/tmp/custom/config.json")

	if got := UserConfigPath(); got != "/tmp/custom/config.json" {
		t.Errorf("UserConfigPath() = %q, want the override", got)
	}
}
