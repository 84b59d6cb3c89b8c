package domain

import (
	"slices"
	"sync"
)

// State is the active search-path and option state of one build invocation.
// It layers the additions made while resolving (sibling discovery, recovery
// heuristics) over the configured base. Only the additions are persisted, so
// the configuration stays the single source of the base settings.
// Every accessor returns a copy and every mutation is locked.
type State struct {
	mu    sync.RWMutex
	base  TargetSettings
	extra TargetSettings
}

// NewState creates a State over base and replays previously persisted extra additions.
func NewState(base, extra TargetSettings) *State {
	s := &State{base: base.Clone()}
	for _, p := range extra.IncludePaths {
		s.AddIncludePath(p)
	}
	for _, p := range extra.LibraryPaths {
		s.AddLibraryPath(p)
	}
	s.AddCompilerOptions(extra.CompilerOptions...)
	s.AddLinkerOptions(extra.LinkerOptions...)
	for _, p := range extra.UsesProjects {
		s.AddUsesProject(p)
	}
	for _, l := range extra.UsesLibraries {
		s.AddUsesLibrary(l)
	}
	return s
}

// IncludePaths returns the include search directories.
func (s *State) IncludePaths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return mergeUnique(s.base.IncludePaths, s.extra.IncludePaths)
}

// LibraryPaths returns the library search directories.
func (s *State) LibraryPaths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return mergeUnique(s.base.LibraryPaths, s.extra.LibraryPaths)
}

// CompilerOptions returns the compiler options.
func (s *State) CompilerOptions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Concat(s.base.CompilerOptions, s.extra.CompilerOptions)
}

// LinkerOptions returns the linker options.
func (s *State) LinkerOptions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Concat(s.base.LinkerOptions, s.extra.LinkerOptions)
}

// UsesProjects returns the sibling projects this project depends on.
func (s *State) UsesProjects() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return mergeUnique(s.base.UsesProjects, s.extra.UsesProjects)
}

// UsesLibraries returns the sibling libraries this project links against.
func (s *State) UsesLibraries() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return mergeUnique(s.base.UsesLibraries, s.extra.UsesLibraries)
}

// AddIncludePath appends dir unless it is already present.
func (s *State) AddIncludePath(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.base.IncludePaths, dir) {
		s.extra.IncludePaths = appendUnique(s.extra.IncludePaths, dir)
	}
}

// AddLibraryPath appends dir unless it is already present.
func (s *State) AddLibraryPath(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.base.LibraryPaths, dir) {
		s.extra.LibraryPaths = appendUnique(s.extra.LibraryPaths, dir)
	}
}

// AddCompilerOptions appends opts unless the same sequence is already present.
func (s *State) AddCompilerOptions(opts ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !containsSeq(slices.Concat(s.base.CompilerOptions, s.extra.CompilerOptions), opts) {
		s.extra.CompilerOptions = append(s.extra.CompilerOptions, opts...)
	}
}

// AddLinkerOptions appends opts unless the same sequence is already present.
func (s *State) AddLinkerOptions(opts ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !containsSeq(slices.Concat(s.base.LinkerOptions, s.extra.LinkerOptions), opts) {
		s.extra.LinkerOptions = append(s.extra.LinkerOptions, opts...)
	}
}

// AddUsesProject records dir as a project dependency.
// It reports false if dir was already recorded.
func (s *State) AddUsesProject(dir string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.base.UsesProjects, dir) || slices.Contains(s.extra.UsesProjects, dir) {
		return false
	}
	s.extra.UsesProjects = append(s.extra.UsesProjects, dir)
	return true
}

// AddUsesLibrary records name as a linked sibling library.
func (s *State) AddUsesLibrary(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.base.UsesLibraries, name) {
		s.extra.UsesLibraries = appendUnique(s.extra.UsesLibraries, name)
	}
}

// Settings returns a copy of the merged state.
func (s *State) Settings() TargetSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TargetSettings{
		IncludePaths:    mergeUnique(s.base.IncludePaths, s.extra.IncludePaths),
		LibraryPaths:    mergeUnique(s.base.LibraryPaths, s.extra.LibraryPaths),
		CompilerOptions: slices.Concat(s.base.CompilerOptions, s.extra.CompilerOptions),
		LinkerOptions:   slices.Concat(s.base.LinkerOptions, s.extra.LinkerOptions),
		UsesProjects:    mergeUnique(s.base.UsesProjects, s.extra.UsesProjects),
		UsesLibraries:   mergeUnique(s.base.UsesLibraries, s.extra.UsesLibraries),
	}
}

// Extra returns a copy of the additions made on top of the base settings.
func (s *State) Extra() TargetSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.extra.Clone()
}

func appendUnique(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}

func mergeUnique(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	for _, v := range a {
		out = appendUnique(out, v)
	}
	for _, v := range b {
		out = appendUnique(out, v)
	}
	return out
}

func containsSeq(list, seq []string) bool {
	if len(seq) == 0 {
		return true
	}
	for i := 0; i+len(seq) <= len(list); i++ {
		if slices.Equal(list[i:i+len(seq)], seq) {
			return true
		}
	}
	return false
}
