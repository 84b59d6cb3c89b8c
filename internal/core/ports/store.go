package ports

import (
	"time"

	"github.com/RomkoSI/ice/internal/core/domain"
)

// SnapshotStore persists the cross-invocation state of a project.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SnapshotStore interface {
	// Load returns the snapshot stored for the project at root. A snapshot that
	// is missing, older than governing, or unreadable yields an empty snapshot.
	Load(root string, governing time.Time) (*domain.Snapshot, error)

	// Save writes the snapshot for the project at root.
	Save(root string, snapshot *domain.Snapshot) error
}
