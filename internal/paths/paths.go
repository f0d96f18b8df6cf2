package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// UserConfigPath returns the path of the shared apimesh config file.
// APIMESH_USER_CONFIG_PATH overrides the default workspace-relative location.
func UserConfigPath() string {
	if p := os.Getenv("APIMESH_USER_CONFIG_PATH"); p != "" {
		return p
	}
	return filepath.Join("apimesh", "config.json")
}

// StateDir returns the directory for persistent apimesh state (survives reboots)
func StateDir() string {
	return filepath.Join(xdg.StateHome, "apimesh")
}

// LogPath returns the path to the debug log file
func LogPath() string {
	return filepath.Join(StateDir(), "apimesh.log")
}
