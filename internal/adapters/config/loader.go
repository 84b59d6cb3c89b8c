// Package config provides the configuration loader for ice.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/RomkoSI/ice/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Default options of the build targets when no configuration sets them.
var defaultTargets = map[domain.BuildTarget]domain.TargetOptions{
	domain.TargetDebug:   {CompilerOptions: []string{"-g", "-O0", "-D_DEBUG"}},
	domain.TargetRelease: {CompilerOptions: []string{"-O3", "-DNDEBUG"}},
}

// Loader implements ports.ConfigLoader using YAML and HCL files.
type Loader struct {
	Logger ports.Logger
	home   func() (string, error)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, home: os.UserHomeDir}
}

func (l *Loader) homeDir() (string, error) {
	home, err := l.home()
	if err != nil || home == "" {
		return "", zerr.Wrap(domain.ErrHomeNotSet, "$HOME is required to locate the user configuration")
	}
	return home, nil
}

// Load reads the user configuration, then the project configuration of root
// on top of it. Project scalars override user scalars, project lists are
// appended to user lists.
func (l *Loader) Load(root string) (*domain.Config, error) {
	home, err := l.homeDir()
	if err != nil {
		return nil, err
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve project root"), "root", root)
	}

	cfg := &domain.Config{
		Root:     root,
		UserFile: domain.DefaultUserConfigPath(home),
		Targets:  make(map[domain.BuildTarget]domain.TargetOptions),
	}

	var user ConfigFile
	found, err := readOptionalYAML(cfg.UserFile, &user)
	if err != nil {
		return nil, err
	}
	if found {
		l.Logger.Debug("loaded user configuration " + cfg.UserFile)
		if err := merge(cfg, &user, home); err != nil {
			return nil, err
		}
	}

	projectFile := filepath.Join(root, domain.ProjectFileName)
	var project ConfigFile
	found, err = readOptionalYAML(projectFile, &project)
	if err != nil {
		return nil, err
	}
	if found {
		l.Logger.Debug("loaded project configuration " + projectFile)
		cfg.ProjectFile = projectFile
		if err := merge(cfg, &project, root); err != nil {
			return nil, err
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

// merge layers file over cfg. Relative search paths are resolved against base.
func merge(cfg *domain.Config, file *ConfigFile, base string) error {
	if file.Name != "" {
		cfg.Name = file.Name
	}
	if file.Compiler != "" {
		cfg.Compiler = file.Compiler
	}
	if file.ObjDir != "" {
		cfg.ObjDir = file.ObjDir
	}
	if file.BuildDir != "" {
		cfg.BuildDir = file.BuildDir
	}

	cfg.SourceDirs = append(cfg.SourceDirs, file.SourceDirs...)
	cfg.Exclude = append(cfg.Exclude, file.Exclude...)
	cfg.IncludePaths = append(cfg.IncludePaths, absolutize(file.IncludePaths, base)...)
	cfg.LibraryPaths = append(cfg.LibraryPaths, absolutize(file.LibraryPaths, base)...)
	cfg.Libraries = append(cfg.Libraries, file.Libraries...)

	for name, dto := range file.Targets {
		target, err := domain.ParseBuildTarget(name)
		if err != nil {
			return zerr.With(err, "section", "targets")
		}
		opts := cfg.Targets[target]
		opts.CompilerOptions = append(opts.CompilerOptions, dto.CompilerOptions...)
		opts.LinkerOptions = append(opts.LinkerOptions, dto.LinkerOptions...)
		cfg.Targets[target] = opts
	}
	return nil
}

func applyDefaults(cfg *domain.Config) {
	if cfg.Name == "" {
		cfg.Name = filepath.Base(cfg.Root)
	}
	if cfg.Compiler == "" {
		cfg.Compiler = os.Getenv("CXX")
	}
	if cfg.Compiler == "" {
		cfg.Compiler = "c++"
	}
	if len(cfg.SourceDirs) == 0 {
		cfg.SourceDirs = []string{"."}
	}
	if cfg.ObjDir == "" {
		cfg.ObjDir = domain.DefaultObjDir
	}
	if cfg.BuildDir == "" {
		cfg.BuildDir = domain.DefaultBuildDir
	}
	for target, opts := range defaultTargets {
		current := cfg.Targets[target]
		if len(current.CompilerOptions) == 0 {
			current.CompilerOptions = slices.Clone(opts.CompilerOptions)
		}
		cfg.Targets[target] = current
	}
}

func absolutize(paths []string, base string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}

// readOptionalYAML decodes path into target. A missing file is reported as not found.
func readOptionalYAML[T any](path string, target *T) (bool, error) {
	// #nosec G304 -- path is derived from the project root or the home directory
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, zerr.With(zerr.Wrap(domain.ErrConfigRead, err.Error()), "file", path)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, zerr.With(zerr.Wrap(domain.ErrConfigParse, err.Error()), "file", path)
	}
	return true, nil
}
