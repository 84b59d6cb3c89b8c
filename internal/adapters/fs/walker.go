// Package fs provides file system adapters for timestamps, source walking and sibling lookup.
package fs

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/RomkoSI/ice/internal/core/ports"
)

var _ ports.FileSystem = (*Walker)(nil)

// sourceExts are the extensions of compilation units.
var sourceExts = []string{".c", ".cpp", ".cc", ".cxx", ".c++", ".m", ".mm"}

// IsSource reports whether path names a compilation unit.
func IsSource(path string) bool {
	return slices.Contains(sourceExts, strings.ToLower(filepath.Ext(path)))
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkSources yields the sources under each of dirs. Relative dirs are joined to root.
// A source reachable from several dirs is yielded once.
func (w *Walker) WalkSources(root string, dirs, exclude []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if len(dirs) == 0 {
			dirs = []string{"."}
		}
		seen := make(map[string]bool)
		for _, dir := range dirs {
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(root, dir)
			}
			for path := range w.walkFiles(dir, exclude) {
				if seen[path] || !IsSource(path) {
					continue
				}
				seen[path] = true
				if !yield(path) {
					return
				}
			}
		}
	}
}

// walkFiles yields all files in the root directory, skipping hidden and ignored directories.
func (w *Walker) walkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root && w.shouldSkip(d, ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// shouldSkip checks if an entry should be skipped based on ignore patterns.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) bool {
	name := d.Name()

	// Hidden directories such as .git never hold project sources.
	if d.IsDir() && strings.HasPrefix(name, ".") {
		return true
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}

	return false
}

// SiblingDirs returns the directories beside dir and beside each of its
// ancestors, nearest level first, sorted by name within a level.
func (w *Walker) SiblingDirs(dir string, depth int) []string {
	var siblings []string
	self := filepath.Base(dir)
	parent := filepath.Dir(dir)

	for level := range depth {
		entries, err := os.ReadDir(parent)
		if err == nil {
			for _, e := range entries {
				if !e.IsDir() || (level == 0 && e.Name() == self) {
					continue
				}
				siblings = append(siblings, filepath.Join(parent, e.Name()))
			}
		}

		next := filepath.Dir(parent)
		if next == parent {
			break
		}
		parent = next
	}
	return siblings
}

// Exists reports whether path exists.
func (w *Walker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
