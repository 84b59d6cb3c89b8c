package planner

import (
	"context"

	"github.com/RomkoSI/ice/internal/adapters/compiler"  //nolint:depguard // Wired in engine wiring
	"github.com/RomkoSI/ice/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"github.com/RomkoSI/ice/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"github.com/RomkoSI/ice/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/RomkoSI/ice/internal/adapters/store"     //nolint:depguard // Wired in engine wiring
	"github.com/RomkoSI/ice/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/RomkoSI/ice/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.WalkerNodeID,
			fs.TimestampsNodeID,
			compiler.NodeID,
			store.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Planner, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			times, err := graft.Dep[ports.Timestamps](ctx)
			if err != nil {
				return nil, err
			}

			toolchain, err := graft.Dep[ports.Toolchain](ctx)
			if err != nil {
				return nil, err
			}

			snapshots, err := graft.Dep[ports.SnapshotStore](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, fsys, times, toolchain, snapshots, tracer, log), nil
		},
	})
}
