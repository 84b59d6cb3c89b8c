package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateLibrary is returned when a library is defined under a name that already exists.
	ErrDuplicateLibrary = zerr.New("library defined twice")

	// ErrInvalidLibrary is returned when a library definition combines incompatible attributes.
	ErrInvalidLibrary = zerr.New("invalid library definition")

	// ErrUnknownLinkage is returned when a linkage kind cannot be parsed.
	ErrUnknownLinkage = zerr.New("unknown linkage kind")

	// ErrCycleDetected is returned when the library dependency graph contains a cycle.
	ErrCycleDetected = zerr.New("library dependency cycle detected")

	// ErrUnknownTarget is returned when a build target name is neither debug nor release.
	ErrUnknownTarget = zerr.New("unknown build target")

	// ErrCompilerError is returned when the dependency scan reports a hard compiler error.
	ErrCompilerError = zerr.New("compiler reported an error while computing dependencies")

	// ErrRetryBoundExceeded is returned when missing headers could not be recovered within the attempt bound.
	ErrRetryBoundExceeded = zerr.New("could not recover from missing headers")

	// ErrScanFailed is returned when the dependency scan process could not be started.
	ErrScanFailed = zerr.New("dependency scan failed")

	// ErrMalformedScanOutput is returned when the scan output does not name a target.
	ErrMalformedScanOutput = zerr.New("unexpected format from dependency checker")

	// ErrHomeNotSet is returned when the home directory needed for the cache location is unknown.
	ErrHomeNotSet = zerr.New("home directory is not set")

	// ErrConfigRead is returned when a configuration file exists but cannot be read.
	ErrConfigRead = zerr.New("failed to read configuration")

	// ErrConfigParse is returned when a configuration file is not valid YAML.
	ErrConfigParse = zerr.New("failed to parse configuration")

	// ErrLibraryDeclaration is returned when a library declaration file is invalid.
	ErrLibraryDeclaration = zerr.New("invalid library declaration file")

	// ErrSnapshotWrite is returned when the dependency cache cannot be persisted.
	ErrSnapshotWrite = zerr.New("failed to write dependency cache")

	// ErrSnapshotCorrupt is returned when the persisted dependency cache cannot be decoded.
	ErrSnapshotCorrupt = zerr.New("dependency cache is corrupt")

	// ErrSourceNotFound is returned when an explained file is not a source of the project.
	ErrSourceNotFound = zerr.New("file is not a source file of this project")

	// ErrToolFailed is returned when an external helper tool exits unsuccessfully.
	ErrToolFailed = zerr.New("external tool failed")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch project files")
)
