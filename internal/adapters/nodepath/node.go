package nodepath

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/fastboot/internal/adapters/fs"
	"go.trai.ch/fastboot/internal/core/ports"
)

// NodeID is the unique identifier for the direct resolver Graft node.
const NodeID graft.ID = "adapter.nodepath"

func init() {
	graft.Register(graft.Node[ports.ModuleResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FileSystemNodeID},
		Run: func(ctx context.Context) (ports.ModuleResolver, error) {
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return NewResolver(fsys, cwd), nil
		},
	})
}
