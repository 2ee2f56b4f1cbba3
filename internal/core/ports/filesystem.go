package ports

import (
	"io/fs"

	"go.trai.ch/fastboot/internal/core/domain"
)

// FileSystem abstracts the filesystem primitives used by the cache and the resolver.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Exists reports whether a file or directory exists at path.
	Exists(path string) bool
	// Stat returns file info for the given path.
	Stat(path string) (fs.FileInfo, error)
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// WriteFile replaces the file at path with data, creating parent directories.
	WriteFile(path string, data []byte) error
	// Remove deletes the file at path. A missing file is not an error.
	Remove(path string) error
}

// ProbeCounter reports how many filesystem calls were made.
type ProbeCounter interface {
	Probes() domain.Probes
}
