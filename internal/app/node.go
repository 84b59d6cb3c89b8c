package app

import (
	"context"

	"github.com/RomkoSI/ice/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"github.com/RomkoSI/ice/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/RomkoSI/ice/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/RomkoSI/ice/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"github.com/RomkoSI/ice/internal/core/ports"
	"github.com/RomkoSI/ice/internal/engine/planner"
	"github.com/grindlemire/graft"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			planner.NodeID,
			watcher.NodeID,
			fs.TimestampsNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	engine, err := graft.Dep[*planner.Planner](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	times, err := graft.Dep[ports.Timestamps](ctx)
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

	return New(engine, w, times, tracer, log), nil
}
