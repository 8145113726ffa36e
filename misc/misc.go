// Package misc keeps build time information.
package misc

var (
	appName = "infogen"
	version = "development"
	gitHash = "unknown"
)

// GetAppName returns program name to be used in various places, like temporary directory names.
func GetAppName() string {
	return appName
}

// GetVersion returns program version set at build time.
func GetVersion() string {
	return version
}

// GetGitHash returns git hash of the source tree used to build the program.
func GetGitHash() string {
	return gitHash
}
