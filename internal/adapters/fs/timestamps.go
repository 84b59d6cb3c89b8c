package fs

import (
	"os"
	"sync"
	"time"

	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/RomkoSI/ice/internal/core/ports"
)

var _ ports.Timestamps = (*TimestampCache)(nil)

// TimestampCache memoizes file modification times for one invocation.
type TimestampCache struct {
	mu    sync.RWMutex
	times map[string]time.Time
	stat  func(string) (os.FileInfo, error)
}

// NewTimestampCache creates an empty TimestampCache.
func NewTimestampCache() *TimestampCache {
	return &TimestampCache{
		times: make(map[string]time.Time),
		stat:  os.Stat,
	}
}

// TimestampOf returns the modification time of path.
// A path that cannot be stat'ed reports domain.EpochZero.
func (c *TimestampCache) TimestampOf(path string) time.Time {
	c.mu.RLock()
	ts, ok := c.times[path]
	c.mu.RUnlock()
	if ok {
		return ts
	}

	ts = domain.EpochZero
	if info, err := c.stat(path); err == nil {
		ts = info.ModTime()
	}

	c.mu.Lock()
	c.times[path] = ts
	c.mu.Unlock()
	return ts
}

// Invalidate forgets the memoized times of paths, or of every path when none are given.
func (c *TimestampCache) Invalidate(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(paths) == 0 {
		clear(c.times)
		return
	}
	for _, p := range paths {
		delete(c.times, p)
	}
}
