// Package store persists the dependency cache of a project between invocations.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/RomkoSI/ice/internal/core/ports"
	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"go.trai.ch/zerr"
)

var _ ports.SnapshotStore = (*Store)(nil)

// Store implements ports.SnapshotStore with one zstd-compressed JSON file per project.
type Store struct {
	dir    string
	logger ports.Logger
}

// NewStore creates a Store keeping its files in dir.
func NewStore(dir string, logger ports.Logger) *Store {
	return &Store{dir: filepath.Clean(dir), logger: logger}
}

// Path returns the cache file of the project rooted at root.
func (s *Store) Path(root string) string {
	name := fmt.Sprintf("%016x%s", xxhash.Sum64String(filepath.Clean(root)), domain.CacheFileExt)
	return filepath.Join(s.dir, name)
}

// Load returns the snapshot of root. A missing file, a file older than
// governing, and a file that cannot be decoded all yield an empty snapshot;
// the undecodable file is removed.
func (s *Store) Load(root string, governing time.Time) (*domain.Snapshot, error) {
	path := s.Path(root)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewSnapshot(), nil
	}
	if err != nil {
		return s.discard(path, err), nil
	}

	if info.ModTime().Before(governing) {
		s.logger.Debug("dependency cache predates the configuration, starting over")
		return domain.NewSnapshot(), nil
	}

	snapshot, err := s.decode(path)
	if err != nil {
		return s.discard(path, err), nil
	}
	return snapshot, nil
}

func (s *Store) decode(path string) (*domain.Snapshot, error) {
	//nolint:gosec // Path is derived from the cache directory
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	data, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, err
	}

	snapshot := domain.NewSnapshot()
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// discard removes an unusable cache file and reports it.
func (s *Store) discard(path string, cause error) *domain.Snapshot {
	err := zerr.With(zerr.Wrap(domain.ErrSnapshotCorrupt, cause.Error()), "file", path)
	if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
		err = zerr.With(err, "remove_error", rmErr.Error())
	}
	s.logger.Warn(err.Error())
	return domain.NewSnapshot()
}

// Save writes snapshot for root. The file is replaced atomically.
func (s *Store) Save(root string, snapshot *domain.Snapshot) error {
	path := s.Path(root)

	data, err := json.Marshal(snapshot)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSnapshotWrite, err.Error()), "file", path)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSnapshotWrite, err.Error()), "file", path)
	}
	compressed := enc.EncodeAll(data, nil)
	_ = enc.Close()

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSnapshotWrite, err.Error()), "file", path)
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSnapshotWrite, err.Error()), "file", path)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Best effort cleanup after rename

	if _, err := tmp.Write(compressed); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrSnapshotWrite, err.Error()), "file", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSnapshotWrite, err.Error()), "file", path)
	}
	//nolint:gosec // Cache files are not secret
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSnapshotWrite, err.Error()), "file", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSnapshotWrite, err.Error()), "file", path)
	}

	s.logger.Debug("saved dependency cache " + path)
	return nil
}
