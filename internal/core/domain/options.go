package domain

import (
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/zerr"
)

// StatusFunc receives a human-readable message for every notable cache event.
type StatusFunc func(message string)

// Options configures a module location cache. Zero values select defaults.
type Options struct {
	// CacheScope is the directory boundary; paths outside it are never cached.
	CacheScope string
	// CacheFile is the volatile, frequently rewritten document.
	CacheFile string
	// StartupFile is the stable seed document, typically committed with the project.
	StartupFile string
	// SaveTimeout is the debounce delay before a pending save is flushed.
	SaveTimeout time.Duration
	// VersionTag is the invalidation token stamped into documents.
	VersionTag string
	// DisableVersionTag accepts any persisted document regardless of its tag.
	DisableVersionTag bool
	// DependencyDirs names the directories whose contents are worth caching.
	DependencyDirs []string
	// StatusCallback receives status messages.
	StatusCallback StatusFunc
}

// Merge returns a copy of o where every non-zero field of other takes precedence.
func (o Options) Merge(other Options) Options {
	merged := o
	if other.CacheScope != "" {
		merged.CacheScope = other.CacheScope
	}
	if other.CacheFile != "" {
		merged.CacheFile = other.CacheFile
	}
	if other.StartupFile != "" {
		merged.StartupFile = other.StartupFile
	}
	if other.SaveTimeout != 0 {
		merged.SaveTimeout = other.SaveTimeout
	}
	if other.VersionTag != "" {
		merged.VersionTag = other.VersionTag
	}
	if other.DisableVersionTag {
		merged.DisableVersionTag = true
	}
	if len(other.DependencyDirs) > 0 {
		merged.DependencyDirs = slices.Clone(other.DependencyDirs)
	}
	if other.StatusCallback != nil {
		merged.StatusCallback = other.StatusCallback
	}
	return merged
}

// WithDefaults fills every unset option. Relative paths are resolved against
// cwd and the version tag falls back to defaultVersion.
func (o Options) WithDefaults(cwd, defaultVersion string) (Options, error) {
	if o.SaveTimeout < 0 {
		return Options{}, zerr.With(ErrInvalidSaveTimeout, "save_timeout", o.SaveTimeout.String())
	}

	resolved := o
	if resolved.CacheScope == "" {
		resolved.CacheScope = cwd
	}
	if resolved.CacheFile == "" {
		resolved.CacheFile = DefaultCacheFile()
	}
	if resolved.StartupFile == "" {
		resolved.StartupFile = DefaultStartupFile()
	}
	resolved.CacheScope = absolute(cwd, resolved.CacheScope)
	resolved.CacheFile = absolute(cwd, resolved.CacheFile)
	resolved.StartupFile = absolute(cwd, resolved.StartupFile)

	if resolved.SaveTimeout == 0 {
		resolved.SaveTimeout = DefaultSaveTimeout
	}

	switch {
	case resolved.DisableVersionTag:
		resolved.VersionTag = ""
	case resolved.VersionTag == "":
		resolved.VersionTag = defaultVersion
	}

	if len(resolved.DependencyDirs) == 0 {
		resolved.DependencyDirs = []string{DependencyDirName}
	}
	if resolved.StatusCallback == nil {
		resolved.StatusCallback = func(string) {}
	}

	return resolved, nil
}

func absolute(cwd, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(cwd, path)
}
