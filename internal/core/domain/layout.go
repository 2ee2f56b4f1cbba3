package domain

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// DependencyDirName is the directory that holds third-party modules.
	DependencyDirName = "node_modules"

	// StartupFileName is the name of the stable startup seed document.
	StartupFileName = "module-locations-startup.json"

	// CacheFileName is the name of the volatile cache document.
	CacheFileName = "module-locations-cache.json"

	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "fastboot.yaml"

	// DefaultSaveTimeout is the debounce delay before a pending save is flushed.
	DefaultSaveTimeout = 1000 * time.Millisecond

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCacheFile returns the default location of the volatile cache document.
// It joins the system temp directory and module-locations-cache.json.
func DefaultCacheFile() string {
	return filepath.Join(os.TempDir(), CacheFileName)
}

// DefaultStartupFile returns the default location of the startup seed document.
// It joins node_modules and module-locations-startup.json.
func DefaultStartupFile() string {
	return filepath.Join(DependencyDirName, StartupFileName)
}
