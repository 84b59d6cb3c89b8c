package domain

import "time"

// RebuildCause explains why a source file must be recompiled.
type RebuildCause int

const (
	// CauseUpToDate means the object file is newer than everything it depends on.
	CauseUpToDate RebuildCause = iota
	// CauseGoverning means the engine or its configuration changed after the object was built.
	CauseGoverning
	// CauseSourceNewer means the source file changed after the object was built.
	CauseSourceNewer
	// CauseDependencyNewer means a dependency changed after the object was built.
	CauseDependencyNewer
)

func (c RebuildCause) String() string {
	switch c {
	case CauseGoverning:
		return "configuration or engine is newer"
	case CauseSourceNewer:
		return "source is newer"
	case CauseDependencyNewer:
		return "dependency is newer"
	default:
		return "up to date"
	}
}

// RebuildReason is the staleness verdict for one source file.
type RebuildReason struct {
	Source     string
	Object     string
	ObjectTime time.Time
	Cause      RebuildCause
	// Culprit is the file whose timestamp triggered the rebuild. It is empty
	// for CauseUpToDate and CauseGoverning.
	Culprit     string
	CulpritTime time.Time
}

// Rebuild reports whether the source file must be recompiled.
func (r RebuildReason) Rebuild() bool {
	return r.Cause != CauseUpToDate
}

// BuildReport is the outcome of resolving a project.
type BuildReport struct {
	InvocationID string
	// Project is the configured project name.
	Project string
	// Root is the absolute project directory.
	Root      string
	Target    BuildTarget
	Governing time.Time
	Sources   []string
	// Rebuild holds the stale sources, in source order.
	Rebuild []RebuildReason
	// LinkOrder lists the required libraries, dependencies first.
	LinkOrder []string
	// Projects lists sibling projects in the order they must be built.
	Projects     []string
	Settings     TargetSettings
	Unresolved   []string
	Dependencies map[string][]string
}

// Explanation is the rebuild verdict of one source file together with its closure.
type Explanation struct {
	Reason       RebuildReason
	Dependencies []string
	Governing    time.Time
}
