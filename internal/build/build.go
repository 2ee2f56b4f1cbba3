// Package build holds build-time information.
package build

// These values can be overwritten by linker flags.
var (
	// Version is the application version. It is also the default version tag
	// stamped into persisted module location documents.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
