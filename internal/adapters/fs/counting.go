package fs

import (
	iofs "io/fs"
	"sync/atomic"

	"go.trai.ch/fastboot/internal/core/domain"
	"go.trai.ch/fastboot/internal/core/ports"
)

var (
	_ ports.FileSystem   = (*CountingFileSystem)(nil)
	_ ports.ProbeCounter = (*CountingFileSystem)(nil)
)

// CountingFileSystem decorates a FileSystem and counts every call.
type CountingFileSystem struct {
	next ports.FileSystem

	exists    atomic.Int64
	stat      atomic.Int64
	readFile  atomic.Int64
	writeFile atomic.Int64
}

// NewCountingFileSystem wraps next.
func NewCountingFileSystem(next ports.FileSystem) *CountingFileSystem {
	return &CountingFileSystem{next: next}
}

// Exists implements ports.FileSystem.
func (c *CountingFileSystem) Exists(path string) bool {
	c.exists.Add(1)
	return c.next.Exists(path)
}

// Stat implements ports.FileSystem.
func (c *CountingFileSystem) Stat(path string) (iofs.FileInfo, error) {
	c.stat.Add(1)
	return c.next.Stat(path)
}

// ReadFile implements ports.FileSystem.
func (c *CountingFileSystem) ReadFile(path string) ([]byte, error) {
	c.readFile.Add(1)
	return c.next.ReadFile(path)
}

// WriteFile implements ports.FileSystem.
func (c *CountingFileSystem) WriteFile(path string, data []byte) error {
	c.writeFile.Add(1)
	return c.next.WriteFile(path, data)
}

// Remove implements ports.FileSystem. Removals are not counted.
func (c *CountingFileSystem) Remove(path string) error {
	return c.next.Remove(path)
}

// Probes returns the current call counts.
func (c *CountingFileSystem) Probes() domain.Probes {
	return domain.Probes{
		Exists:    c.exists.Load(),
		Stat:      c.stat.Load(),
		ReadFile:  c.readFile.Load(),
		WriteFile: c.writeFile.Load(),
	}
}
