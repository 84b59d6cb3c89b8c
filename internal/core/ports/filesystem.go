package ports

import "iter"

// FileSystem answers the project layout questions of the engine.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// WalkSources yields the absolute paths of the C, C++ and Objective-C
	// sources under dirs of root in lexical order. Directories and files
	// whose name matches an exclude pattern are skipped.
	WalkSources(root string, dirs, exclude []string) iter.Seq[string]

	// SiblingDirs returns the directories next to dir, then next to its parent,
	// and so on for depth levels. dir itself is never returned.
	SiblingDirs(dir string, depth int) []string

	// Exists reports whether path exists.
	Exists(path string) bool
}
