// Package vars holds build information injected with -ldflags.
package vars

import (
	"fmt"
	"runtime"
)

var (
	// Version of the build, semver tag or "dev".
	Version = "dev"
	// Commit is the short git revision.
	Commit = "unknown"
	// BuildTime is the RFC 3339 build timestamp.
	BuildTime = "unknown"
)

// String returns the one-line version banner.
func String() string {
	return fmt.Sprintf("trucksim-map %s (%s, %s) %s/%s", Version, Commit, BuildTime, runtime.GOOS, runtime.GOARCH)
}

// Print writes the version information to stdout.
func Print() {
	fmt.Println(String())
}
