package domain

import (
	"encoding/json"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Linkage is the way a library is linked into a binary.
type Linkage int

const (
	// LinkageStatic is an archive (.a or .lib).
	LinkageStatic Linkage = iota + 1
	// LinkageDynamic is a shared object (.so, .dll or .dylib).
	LinkageDynamic
	// LinkageFramework is a macOS framework bundle.
	LinkageFramework
)

func (l Linkage) String() string {
	switch l {
	case LinkageStatic:
		return "static"
	case LinkageDynamic:
		return "dynamic"
	case LinkageFramework:
		return "framework"
	default:
		return "unknown"
	}
}

// ParseLinkage converts a linkage name into a Linkage.
func ParseLinkage(s string) (Linkage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static":
		return LinkageStatic, nil
	case "dynamic":
		return LinkageDynamic, nil
	case "framework":
		return LinkageFramework, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrUnknownLinkage, "linkage must be static, dynamic or framework"), "linkage", s)
	}
}

// Library describes a named linkable unit and the evidence that a project needs it.
// Libraries are immutable once constructed; use NewLibrary to build one.
type Library struct {
	name             string
	linkage          Linkage
	releaseLib       string
	debugLib         string
	releaseFramework string
	debugFramework   string
	headers          []string
	symbols          []string
	dependsOn        []string
	deploy           bool
}

// LibraryOption configures optional attributes of a Library.
type LibraryOption func(*Library)

// WithBinaries sets the release and debug binary base names.
func WithBinaries(release, debug string) LibraryOption {
	return func(l *Library) {
		l.releaseLib = release
		l.debugLib = debug
	}
}

// WithFrameworks sets the release and debug framework names.
func WithFrameworks(release, debug string) LibraryOption {
	return func(l *Library) {
		l.releaseFramework = release
		l.debugFramework = debug
	}
}

// WithHeaders sets the headers whose inclusion triggers a link against the library.
func WithHeaders(headers ...string) LibraryOption {
	return func(l *Library) {
		l.headers = append(l.headers, headers...)
	}
}

// WithSymbols sets the unresolved symbols that trigger a link against the library.
func WithSymbols(symbols ...string) LibraryOption {
	return func(l *Library) {
		l.symbols = append(l.symbols, symbols...)
	}
}

// WithDependsOn sets the names of the libraries this library needs.
func WithDependsOn(names ...string) LibraryOption {
	return func(l *Library) {
		l.dependsOn = append(l.dependsOn, names...)
	}
}

// WithDeploy marks the library artifact as one that must ship with deployed binaries.
func WithDeploy(deploy bool) LibraryOption {
	return func(l *Library) {
		l.deploy = deploy
	}
}

// NewLibrary validates and constructs a Library.
func NewLibrary(name string, linkage Linkage, opts ...LibraryOption) (*Library, error) {
	lib := &Library{name: name, linkage: linkage}
	for _, opt := range opts {
		opt(lib)
	}

	if err := lib.validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l *Library) validate() error {
	invalid := func(reason string) error {
		return zerr.With(zerr.With(zerr.Wrap(ErrInvalidLibrary, reason), "library", l.name), "linkage", l.linkage.String())
	}

	if strings.TrimSpace(l.name) == "" {
		return invalid("library name is empty")
	}

	switch l.linkage {
	case LinkageStatic:
		if l.deploy {
			return invalid("static libraries are never deployed")
		}
	case LinkageDynamic:
	case LinkageFramework:
		if l.releaseFramework == "" || l.debugFramework == "" {
			return invalid("framework libraries need release and debug framework names")
		}
		return nil
	default:
		return invalid("linkage must be static, dynamic or framework")
	}

	if l.releaseLib == "" || l.debugLib == "" {
		return invalid("static and dynamic libraries need release and debug binary names")
	}
	return nil
}

// Name returns the canonical library name.
func (l *Library) Name() string { return l.name }

// Linkage returns the linkage kind.
func (l *Library) Linkage() Linkage { return l.linkage }

// Headers returns the trigger headers.
func (l *Library) Headers() []string { return slices.Clone(l.headers) }

// Symbols returns the trigger symbols.
func (l *Library) Symbols() []string { return slices.Clone(l.symbols) }

// DependsOn returns the names of the libraries this library needs.
func (l *Library) DependsOn() []string { return slices.Clone(l.dependsOn) }

// Deploy reports whether the artifact must be bundled on deployment.
func (l *Library) Deploy() bool { return l.deploy }

// Binary returns the binary base name used for target.
func (l *Library) Binary(target BuildTarget) string {
	if target == TargetDebug {
		return l.debugLib
	}
	return l.releaseLib
}

// Framework returns the framework name used for target, or "" if there is none.
func (l *Library) Framework(target BuildTarget) string {
	if target == TargetDebug {
		return l.debugFramework
	}
	return l.releaseFramework
}

// LinkableOn reports whether the library contributes anything to a link on platform.
func (l *Library) LinkableOn(platform Platform) bool {
	return l.linkage != LinkageFramework || platform.SupportsFrameworks()
}

type libraryJSON struct {
	Name             string   `json:"name"`
	Linkage          string   `json:"linkage"`
	ReleaseLib       string   `json:"release_lib,omitempty"`
	DebugLib         string   `json:"debug_lib,omitempty"`
	ReleaseFramework string   `json:"release_framework,omitempty"`
	DebugFramework   string   `json:"debug_framework,omitempty"`
	Headers          []string `json:"headers,omitempty"`
	Symbols          []string `json:"symbols,omitempty"`
	DependsOn        []string `json:"depends_on,omitempty"`
	Deploy           bool     `json:"deploy,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (l *Library) MarshalJSON() ([]byte, error) {
	return json.Marshal(libraryJSON{
		Name:             l.name,
		Linkage:          l.linkage.String(),
		ReleaseLib:       l.releaseLib,
		DebugLib:         l.debugLib,
		ReleaseFramework: l.releaseFramework,
		DebugFramework:   l.debugFramework,
		Headers:          l.headers,
		Symbols:          l.symbols,
		DependsOn:        l.dependsOn,
		Deploy:           l.deploy,
	})
}

// UnmarshalJSON implements json.Unmarshaler. The decoded value is validated like NewLibrary.
func (l *Library) UnmarshalJSON(data []byte) error {
	var raw libraryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	linkage, err := ParseLinkage(raw.Linkage)
	if err != nil {
		return err
	}

	lib, err := NewLibrary(raw.Name, linkage,
		WithBinaries(raw.ReleaseLib, raw.DebugLib),
		WithFrameworks(raw.ReleaseFramework, raw.DebugFramework),
		WithHeaders(raw.Headers...),
		WithSymbols(raw.Symbols...),
		WithDependsOn(raw.DependsOn...),
		WithDeploy(raw.Deploy),
	)
	if err != nil {
		return err
	}

	*l = *lib
	return nil
}
