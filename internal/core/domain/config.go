package domain

import "path/filepath"

// TargetOptions are the compiler and linker options of one build target.
type TargetOptions struct {
	CompilerOptions []string
	LinkerOptions   []string
}

// Config is the merged project and user configuration.
type Config struct {
	// Root is the absolute project root directory.
	Root string
	// Name is the project name. It defaults to the root directory name.
	Name string
	// Compiler is the compiler executable used for dependency scans.
	Compiler     string
	SourceDirs   []string
	Exclude      []string
	ObjDir       string
	BuildDir     string
	IncludePaths []string
	LibraryPaths []string
	// Libraries are required regardless of what the sources include.
	Libraries []string
	Targets   map[BuildTarget]TargetOptions
	// ProjectFile is the project configuration path, or "" if the project has none.
	ProjectFile string
	// UserFile is the user configuration path. It may not exist.
	UserFile string
}

// Settings returns the base search and option state for target.
func (c *Config) Settings(target BuildTarget) TargetSettings {
	opts := c.Targets[target]
	return TargetSettings{
		IncludePaths:    c.IncludePaths,
		LibraryPaths:    c.LibraryPaths,
		CompilerOptions: opts.CompilerOptions,
		LinkerOptions:   opts.LinkerOptions,
	}.Clone()
}

// ObjPath returns the absolute object directory for target.
func (c *Config) ObjPath(target BuildTarget) string {
	dir := c.ObjDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.Root, dir)
	}
	return filepath.Join(dir, target.String())
}

// LibraryOutputPath returns the directory a library project builds its artifacts into.
func (c *Config) LibraryOutputPath() string {
	dir := c.BuildDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.Root, dir)
	}
	return filepath.Join(dir, LibDirName)
}

// LibraryDeclarations are libraries and ordering pairs declared in configuration.
type LibraryDeclarations struct {
	Libraries []*Library
	Pairs     []OrderingPair
	// Files lists the declaration files that were read.
	Files []string
}
