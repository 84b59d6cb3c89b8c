package domain

import (
	"slices"
	"sort"
	"sync"

	"go.trai.ch/zerr"
)

// Catalog is the library knowledge base. It indexes every library by name and by
// each of its trigger headers and symbols. It is safe for concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	libs     map[string]*Library
	byHeader map[string][]string
	bySymbol map[string][]string
	custom   []string
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		libs:     make(map[string]*Library),
		byHeader: make(map[string][]string),
		bySymbol: make(map[string][]string),
	}
}

// NewBuiltinCatalog creates a Catalog holding the built-in library table for platform.
func NewBuiltinCatalog(platform Platform) (*Catalog, error) {
	c := NewCatalog()
	libs, err := BuiltinLibraries(platform)
	if err != nil {
		return nil, err
	}
	for _, lib := range libs {
		if err := c.Define(lib); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Define adds lib to the catalog.
// It returns ErrDuplicateLibrary if a library with the same name already exists.
func (c *Catalog) Define(lib *Library) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defineLocked(lib)
}

// DefineCustom adds a library registered at runtime. Custom libraries are
// reported by Custom so that they can be persisted across invocations.
func (c *Catalog) DefineCustom(lib *Library) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.defineLocked(lib); err != nil {
		return err
	}
	c.custom = append(c.custom, lib.Name())
	return nil
}

func (c *Catalog) defineLocked(lib *Library) error {
	if _, exists := c.libs[lib.Name()]; exists {
		return zerr.With(zerr.Wrap(ErrDuplicateLibrary, "library '"+lib.Name()+"' defined twice"), "library", lib.Name())
	}

	c.libs[lib.Name()] = lib
	for _, h := range lib.headers {
		c.byHeader[h] = append(c.byHeader[h], lib.Name())
	}
	for _, s := range lib.symbols {
		c.bySymbol[s] = append(c.bySymbol[s], lib.Name())
	}
	return nil
}

// Lookup returns the library with the given name.
func (c *Catalog) Lookup(name string) (*Library, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	lib, ok := c.libs[name]
	return lib, ok
}

// Has reports whether a library with the given name is defined.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Names returns the names of all defined libraries in ascending order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.libs))
	for name := range c.libs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Custom returns the libraries registered with DefineCustom, in registration order.
func (c *Catalog) Custom() []*Library {
	c.mu.RLock()
	defer c.mu.RUnlock()
	libs := make([]*Library, 0, len(c.custom))
	for _, name := range c.custom {
		libs = append(libs, c.libs[name])
	}
	return libs
}

// TriggeredBy returns the names of every library triggered by any of the given
// header or symbol names, in ascending order without duplicates.
// A header or symbol that maps to several libraries triggers all of them.
func (c *Catalog) TriggeredBy(keys ...string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var names []string
	for _, key := range keys {
		names = append(names, c.byHeader[key]...)
		names = append(names, c.bySymbol[key]...)
	}
	slices.Sort(names)
	return slices.Compact(names)
}
