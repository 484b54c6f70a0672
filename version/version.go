// Package version holds the release of dosk.
//
// `dosk version` prints the banner, and Lua scripts see the bare
// version string as the global `version`.
package version

import "fmt"

// version is replaced at link time, with -ldflags "-X".
var version = "unreleased"

// homepage is shown beneath the version in the banner.
const homepage = "https://github.com/skx/dosk/"

// GetVersionBanner returns our name and version, then the homepage on a
// line of its own.
func GetVersionBanner() string {
	return fmt.Sprintf("dosk %s\n%s\n", version, homepage)
}

// GetVersionString returns the bare version.
func GetVersionString() string {
	return version
}
