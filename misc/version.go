// Package misc keeps build time information.
package misc

const appName = "lsel"

// set by the linker
var (
	version = "dev"
	githash = "unknown"
)

// GetAppName returns program name.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git hash the program was built from.
func GetGitHash() string {
	return githash
}
