package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// BuildTarget selects the cache partition and the option set applied to a build.
type BuildTarget string

const (
	// TargetDebug builds with debug information and without optimization.
	TargetDebug BuildTarget = "debug"
	// TargetRelease builds optimized binaries.
	TargetRelease BuildTarget = "release"
)

// BuildTargets lists every build target in a stable order.
func BuildTargets() []BuildTarget {
	return []BuildTarget{TargetDebug, TargetRelease}
}

// ParseBuildTarget converts a case-insensitive name into a BuildTarget.
func ParseBuildTarget(s string) (BuildTarget, error) {
	switch BuildTarget(strings.ToLower(strings.TrimSpace(s))) {
	case TargetDebug:
		return TargetDebug, nil
	case TargetRelease:
		return TargetRelease, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownTarget, "invalid --target value"), "target", s)
	}
}

func (t BuildTarget) String() string {
	return string(t)
}
