// Package version carries build metadata stamped in with -ldflags.
package version

import (
	"fmt"
)

// These variables are populated at build time via -ldflags, for example
// -X github.com/faizmokh/jejak/internal/version.Version=v0.3.0.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns a one-line summary of the build, used by --verbose logging.
func Info() string {
	return fmt.Sprintf("jejak %s (commit %s, built %s)", Version, Commit, Date)
}
