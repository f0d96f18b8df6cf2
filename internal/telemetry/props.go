package telemetry

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/apimesh/apimesh/internal/version"
)

var basePropsOnce sync.Once
var baseProps map[string]any

// baseProperties returns the static properties attached to every event.
// Computed once; host.PlatformInformation reads /etc/os-release (or queries
// WMI) so this only ever runs on a delivery goroutine, off the caller's path.
func baseProperties() map[string]any {
	basePropsOnce.Do(func() {
		baseProps = map[string]any{
			"goos":       runtime.GOOS,
			"goarch":     runtime.GOARCH,
			"term":       os.Getenv("TERM"),
			"shell":      filepath.Base(os.Getenv("SHELL")),
			"version":    version.Version,
			"go_version": runtime.Version(),
		}
		if platform, _, platformVersion, err := host.PlatformInformation(); err == nil {
			baseProps["platform"] = platform
			baseProps["platform_version"] = platformVersion
		}
	})
	return baseProps
}
