package compiler

import (
	"context"

	"github.com/RomkoSI/ice/internal/adapters/shell"
	"github.com/RomkoSI/ice/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the toolchain Graft node.
const NodeID graft.ID = "adapter.toolchain"

func init() {
	graft.Register(graft.Node[ports.Toolchain]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.Toolchain, error) {
			runner, err := graft.Dep[ports.ToolRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewToolchain(runner), nil
		},
	})
}
