package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fastboot/internal/core/ports"
)

const (
	// CountingNodeID is the graft node ID for the probe-counting filesystem.
	CountingNodeID graft.ID = "adapter.fs.counting"
	// FileSystemNodeID is the graft node ID for the filesystem port.
	FileSystemNodeID graft.ID = "adapter.fs.filesystem"
	// ProbeCounterNodeID is the graft node ID for the probe counter port.
	ProbeCounterNodeID graft.ID = "adapter.fs.probes"
	// HasherNodeID is the graft node ID for the file hasher.
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	// Counting Node (Concrete implementation needed for probe statistics)
	graft.Register(graft.Node[*CountingFileSystem]{
		ID:        CountingNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*CountingFileSystem, error) {
			return NewCountingFileSystem(NewOSFileSystem()), nil
		},
	})

	// FileSystem Node
	graft.Register(graft.Node[ports.FileSystem]{
		ID:        FileSystemNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{CountingNodeID},
		Run: func(ctx context.Context) (ports.FileSystem, error) {
			counting, err := graft.Dep[*CountingFileSystem](ctx)
			if err != nil {
				return nil, err
			}
			return counting, nil
		},
	})

	graft.Register(graft.Node[ports.ProbeCounter]{
		ID:        ProbeCounterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{CountingNodeID},
		Run: func(ctx context.Context) (ports.ProbeCounter, error) {
			counting, err := graft.Dep[*CountingFileSystem](ctx)
			if err != nil {
				return nil, err
			}
			return counting, nil
		},
	})

	// Hasher Node
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
