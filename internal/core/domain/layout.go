package domain

import (
	"path/filepath"
	"time"
)

const (
	// ProjectFileName is the name of the optional project configuration file.
	ProjectFileName = "ice.yaml"

	// UserFileName is the name of the user configuration file in the home directory.
	UserFileName = ".icompile"

	// LibraryFileName is the name of the optional library declaration file.
	LibraryFileName = "libraries.hcl"

	// IceDirName is the name of the per-user metadata directory.
	IceDirName = ".ice"

	// CacheDirName is the name of the dependency cache directory.
	CacheDirName = "cache"

	// CacheFileExt is the extension of persisted dependency cache files.
	CacheFileExt = ".json.zst"

	// DefaultObjDir is the default object file directory, relative to the project root.
	DefaultObjDir = "build/obj"

	// DefaultBuildDir is the default build output directory, relative to the project root.
	DefaultBuildDir = "build"

	// LibDirName is the directory under the build directory that holds library artifacts.
	LibDirName = "lib"

	// IncludeDirName is the directory of a library project that holds its public headers.
	IncludeDirName = "include"

	// ObjectExt is the extension given to compiled object files.
	ObjectExt = ".o"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// WarningPeriod is how long an identical advisory warning stays silenced.
	WarningPeriod = 72 * time.Hour

	// MaxScanAttempts bounds the dependency scan attempts for a single file.
	MaxScanAttempts = 3

	// SiblingDepth is how many directory levels above the project are searched for sibling libraries.
	SiblingDepth = 3
)

// EpochZero is the timestamp reported for files that do not exist.
var EpochZero = time.Unix(0, 0).UTC()

// DefaultCachePath returns the directory holding dependency caches under home.
// It joins home, .ice, and cache.
func DefaultCachePath(home string) string {
	return filepath.Join(home, IceDirName, CacheDirName)
}

// DefaultUserConfigPath returns the path of the user configuration file under home.
func DefaultUserConfigPath(home string) string {
	return filepath.Join(home, UserFileName)
}

// DefaultUserLibraryPath returns the path of the user library declarations under home.
func DefaultUserLibraryPath(home string) string {
	return filepath.Join(home, IceDirName, LibraryFileName)
}
