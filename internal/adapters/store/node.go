package store

import (
	"context"
	"os"

	"github.com/RomkoSI/ice/internal/adapters/logger"
	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/RomkoSI/ice/internal/core/ports"
	"github.com/grindlemire/graft"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the snapshot store Graft node.
const NodeID graft.ID = "adapter.snapshot_store"

func init() {
	graft.Register(graft.Node[ports.SnapshotStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SnapshotStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			home, err := os.UserHomeDir()
			if err != nil || home == "" {
				return nil, zerr.Wrap(domain.ErrHomeNotSet, "$HOME is required to locate the dependency cache")
			}
			return NewStore(domain.DefaultCachePath(home), log), nil
		},
	})
}
