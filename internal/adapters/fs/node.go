package fs

import (
	"context"

	"github.com/RomkoSI/ice/internal/core/ports"
	"github.com/grindlemire/graft"
)

const (
	// WalkerNodeID is the unique identifier for the file system walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// TimestampsNodeID is the unique identifier for the timestamp cache Graft node.
	TimestampsNodeID graft.ID = "adapter.fs.timestamps"
)

func init() {
	graft.Register(graft.Node[ports.FileSystem]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileSystem, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Timestamps]{
		ID:        TimestampsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Timestamps, error) {
			return NewTimestampCache(), nil
		},
	})
}
