// Package version exposes build metadata injected at link time.
package version

import "github.com/Masterminds/semver/v3"

// Build metadata, overridden with -ldflags "-X github.com/rshade/pkindex/pkg/version.version=...".
//
//nolint:gochecknoglobals // Set by the linker.
var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// Semver parses the version string.
func Semver() (*semver.Version, error) {
	return semver.NewVersion(version)
}

// IsDevBuild reports whether the binary carries a pre-release or
// unparsable version, as local builds do.
func IsDevBuild() bool {
	v, err := Semver()
	return err != nil || v.Prerelease() != ""
}
