// Package version carries build-time version information.
package version

import "fmt"

var (
	// overridden during build with ldflags, e.g.
	// -X "github.com/performance-portal/goldenpath/pkg/version.Version=1.0.0"
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns the full human-readable version string.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
