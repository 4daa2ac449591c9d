// Package version provides build-time version information.
package version

import "fmt"

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version
	Version = "0.1.0"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// String formats the version for -version output and window titles.
func String(app string) string {
	return fmt.Sprintf("%s v%s (%s)", app, Version, GitCommit)
}
