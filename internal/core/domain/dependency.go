package domain

import (
	"encoding/json"
	"maps"
	"slices"
	"sync"
	"time"
)

// DependencyRecord is the resolved dependency closure of one source file.
type DependencyRecord struct {
	// ComputedAt is when the closure was resolved.
	ComputedAt time.Time `json:"computed_at"`
	// Dependencies holds absolute paths, including the source file itself.
	Dependencies []string `json:"dependencies"`
}

// Trustworthy reports whether the record can be reused for source.
// It fails as soon as the source or any dependency changed after ComputedAt,
// or a dependency other than one of optional has disappeared.
func (r DependencyRecord) Trustworthy(source string, timestampOf func(string) time.Time, optional ...string) bool {
	if timestampOf(source).After(r.ComputedAt) {
		return false
	}
	for _, dep := range r.Dependencies {
		ts := timestampOf(dep)
		if ts.After(r.ComputedAt) {
			return false
		}
		if ts.Equal(EpochZero) && !slices.Contains(optional, dep) {
			return false
		}
	}
	return true
}

// TargetSettings is the search and option state accumulated for one build target.
type TargetSettings struct {
	IncludePaths    []string `json:"include_paths,omitempty"`
	LibraryPaths    []string `json:"library_paths,omitempty"`
	CompilerOptions []string `json:"compiler_options,omitempty"`
	LinkerOptions   []string `json:"linker_options,omitempty"`
	UsesProjects    []string `json:"uses_projects,omitempty"`
	UsesLibraries   []string `json:"uses_libraries,omitempty"`
}

// Clone returns a deep copy of s.
func (s TargetSettings) Clone() TargetSettings {
	return TargetSettings{
		IncludePaths:    slices.Clone(s.IncludePaths),
		LibraryPaths:    slices.Clone(s.LibraryPaths),
		CompilerOptions: slices.Clone(s.CompilerOptions),
		LinkerOptions:   slices.Clone(s.LinkerOptions),
		UsesProjects:    slices.Clone(s.UsesProjects),
		UsesLibraries:   slices.Clone(s.UsesLibraries),
	}
}

// DependencyCache holds the dependency records and settings of one build target.
// It is safe for concurrent use.
type DependencyCache struct {
	mu       sync.RWMutex
	records  map[string]DependencyRecord
	settings TargetSettings
}

// NewDependencyCache creates an empty DependencyCache.
func NewDependencyCache() *DependencyCache {
	return &DependencyCache{records: make(map[string]DependencyRecord)}
}

// Record returns the record stored for source.
func (c *DependencyCache) Record(source string) (DependencyRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.records[source]
	return r, ok
}

// Store writes or overwrites the record for source.
func (c *DependencyCache) Store(source string, r DependencyRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[source] = DependencyRecord{ComputedAt: r.ComputedAt, Dependencies: slices.Clone(r.Dependencies)}
}

// Evict removes the record for source, if any.
func (c *DependencyCache) Evict(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, source)
}

// Len returns the number of stored records.
func (c *DependencyCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Settings returns a copy of the persisted target settings.
func (c *DependencyCache) Settings() TargetSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.Clone()
}

// SetSettings replaces the persisted target settings.
func (c *DependencyCache) SetSettings(s TargetSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = s.Clone()
}

type dependencyCacheJSON struct {
	Records  map[string]DependencyRecord `json:"records"`
	Settings TargetSettings              `json:"settings"`
}

// MarshalJSON implements json.Marshaler.
func (c *DependencyCache) MarshalJSON() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return json.Marshal(dependencyCacheJSON{Records: c.records, Settings: c.settings})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *DependencyCache) UnmarshalJSON(data []byte) error {
	var raw dependencyCacheJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = make(map[string]DependencyRecord, len(raw.Records))
	maps.Copy(c.records, raw.Records)
	c.settings = raw.Settings
	return nil
}
