package domain

import (
	"encoding/json"
	"sync"
	"time"
)

// Snapshot is the state that survives across invocations: the warning
// throttle, a dependency cache per build target, and the libraries
// registered at runtime. It is safe for concurrent use.
type Snapshot struct {
	mu        sync.Mutex
	warnings  map[string]time.Time
	targets   map[BuildTarget]*DependencyCache
	libraries []*Library
}

// NewSnapshot creates an empty Snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		warnings: make(map[string]time.Time),
		targets:  make(map[BuildTarget]*DependencyCache),
	}
}

// Target returns the dependency cache for target, creating it on first use.
func (s *Snapshot) Target(target BuildTarget) *DependencyCache {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.targets[target]
	if !ok {
		c = NewDependencyCache()
		s.targets[target] = c
	}
	return c
}

// ShouldWarn reports whether text should be shown at now. A text is shown the
// first time and then at most once per WarningPeriod; showing it records now.
func (s *Snapshot) ShouldWarn(text string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, seen := s.warnings[text]
	if seen && !last.Add(WarningPeriod).Before(now) {
		return false
	}
	s.warnings[text] = now
	return true
}

// SetLibraries replaces the persisted runtime-registered libraries.
func (s *Snapshot) SetLibraries(libs []*Library) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.libraries = append([]*Library(nil), libs...)
}

// Libraries returns the persisted runtime-registered libraries.
func (s *Snapshot) Libraries() []*Library {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Library(nil), s.libraries...)
}

type snapshotJSON struct {
	Warnings  map[string]time.Time             `json:"warnings"`
	Targets   map[BuildTarget]*DependencyCache `json:"targets"`
	Libraries []*Library                       `json:"libraries"`
}

// MarshalJSON implements json.Marshaler.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Marshal(snapshotJSON{Warnings: s.warnings, Targets: s.targets, Libraries: s.libraries})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw snapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnings = raw.Warnings
	if s.warnings == nil {
		s.warnings = make(map[string]time.Time)
	}
	s.targets = make(map[BuildTarget]*DependencyCache, len(raw.Targets))
	for t, c := range raw.Targets {
		if _, err := ParseBuildTarget(string(t)); err != nil {
			return err
		}
		if c == nil {
			c = NewDependencyCache()
		}
		s.targets[t] = c
	}
	s.libraries = raw.Libraries
	return nil
}
