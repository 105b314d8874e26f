// Package version carries the build identity stamped in at link time.
package version

import (
	"fmt"
	"runtime"
)

// Set via -ldflags at release build time; defaults cover go-install builds.
var (
	Version = "0.1.0"
	Commit  = "unknown"
)

// Short is the one-line form used in logs and the update check.
func Short() string {
	return fmt.Sprintf("umlforge %s", Version)
}

// Long is the multi-line form printed by the version command.
func Long() string {
	return fmt.Sprintf("umlforge %s\ncommit: %s\nplatform: %s/%s\n%s",
		Version, Commit, runtime.GOOS, runtime.GOARCH, runtime.Version())
}
