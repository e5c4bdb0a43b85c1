// Package version carries build-time identity, injected via -ldflags.
package version

import "fmt"

var (
	// Version is the semantic version of this build.
	Version = "v0.1.0"
	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"
	// BuildDate is the RFC3339 build timestamp.
	BuildDate = "unknown"
)

// String returns a single-line human readable version string.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
