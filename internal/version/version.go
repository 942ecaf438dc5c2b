// Package version exposes build-time version information.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time with -ldflags:
//
//	-X github.com/druskus20/bageri/internal/version.Version=v1.2.3
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Get returns the effective version string, falling back to the module
// version embedded by the Go toolchain when no ldflags were provided.
func Get() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}

// String returns a one-line human readable description.
func String() string {
	return fmt.Sprintf("bageri %s (commit %s, built %s, %s %s/%s)",
		Get(), GitCommit, BuildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
