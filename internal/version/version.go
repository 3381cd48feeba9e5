// Package version carries build metadata set by the linker.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"     // Default value if not built with LDFLAGS
	CommitHash = "unknown" // Default value
	BuildDate  = "unknown" // Default value
)

// Resolved returns Version, falling back to the module version recorded by
// go install when no LDFLAGS were given.
func Resolved() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// String is the one-line form printed by "ansifold version".
func String() string {
	return fmt.Sprintf("ansifold %s (commit %s, built %s, %s %s/%s)",
		Resolved(), CommitHash, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
