// Package resolver computes the dependency closure of single source files.
package resolver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/RomkoSI/ice/internal/adapters/compiler" //nolint:depguard // Output parsing is shared with the adapter
	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/RomkoSI/ice/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver resolves and caches the dependency closures of one build invocation.
// It is safe for concurrent use.
type Resolver struct {
	toolchain   ports.Toolchain
	times       ports.Timestamps
	fs          ports.FileSystem
	logger      ports.Logger
	cfg         *domain.Config
	cache       *domain.DependencyCache
	state       *domain.State
	maxAttempts int
	now         func() time.Time
	wd          string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxAttempts bounds the scan attempts per file.
func WithMaxAttempts(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithClock sets the clock used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// WithWorkingDir sets the directory tried after the project root when
// locating a relative dependency. It defaults to the process working directory.
func WithWorkingDir(dir string) Option {
	return func(r *Resolver) {
		r.wd = dir
	}
}

// New creates a Resolver over the given per-invocation state.
func New(
	toolchain ports.Toolchain,
	times ports.Timestamps,
	fsys ports.FileSystem,
	logger ports.Logger,
	cfg *domain.Config,
	cache *domain.DependencyCache,
	state *domain.State,
	opts ...Option,
) *Resolver {
	r := &Resolver{
		toolchain:   toolchain,
		times:       times,
		fs:          fsys,
		logger:      logger,
		cfg:         cfg,
		cache:       cache,
		state:       state,
		maxAttempts: domain.MaxScanAttempts,
		now:         time.Now,
	}
	r.wd, _ = os.Getwd()
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns every file that file depends on, including itself and the
// user configuration file. needsFurtherResolution is true when some
// dependencies could not be located yet; those stay relative in deps and no
// record is cached for file.
func (r *Resolver) Resolve(ctx context.Context, file string) (needsFurtherResolution bool, deps []string, err error) {
	if record, ok := r.cache.Record(file); ok && record.Trustworthy(file, r.times.TimestampOf, r.cfg.UserFile) {
		return false, slices.Clone(record.Dependencies), nil
	}

	found, err := r.scan(ctx, file)
	if err != nil {
		return false, nil, err
	}

	deps = r.absolutize(found)
	deps = append(deps, r.cfg.UserFile)

	if slices.ContainsFunc(deps, func(d string) bool { return !filepath.IsAbs(d) }) {
		r.cache.Evict(file)
		return true, deps, nil
	}

	r.cache.Store(file, domain.DependencyRecord{ComputedAt: r.now(), Dependencies: deps})
	return false, deps, nil
}

// scan runs the dependency scan until it yields a dependency list, applying
// recovery heuristics between attempts.
func (r *Resolver) scan(ctx context.Context, file string) ([]string, error) {
	for attempt := 1; ; attempt++ {
		settings := r.state.Settings()
		raw, err := r.toolchain.ScanDependencies(ctx, ports.ScanRequest{
			Compiler:     r.cfg.Compiler,
			File:         file,
			Dir:          r.cfg.Root,
			Options:      settings.CompilerOptions,
			IncludePaths: settings.IncludePaths,
		})
		if err != nil {
			return nil, err
		}

		result, err := compiler.ParseDependencyOutput(raw)
		if err != nil {
			return nil, zerr.With(err, "file", file)
		}
		if result.Outcome == compiler.OutcomeDependencies {
			return result.Dependencies, nil
		}

		if attempt >= r.maxAttempts {
			err := zerr.Wrap(domain.ErrRetryBoundExceeded, result.Diagnostic)
			return nil, zerr.With(zerr.With(err, "file", file), "attempts", attempt)
		}

		r.logger.Debug("recovering from missing files in " + file + ": " + strings.Join(result.Missing, ", "))
		r.recover(ctx, result.Missing)
	}
}

// recovery adjusts the active state so that a missing header can be found.
type recovery func(ctx context.Context, r *Resolver) error

var recoveries = map[string]recovery{
	"wx.h": recoverWxWidgets,
}

func (r *Resolver) recover(ctx context.Context, missing []string) {
	for _, header := range missing {
		fix, ok := recoveries[header]
		if !ok {
			continue
		}
		if err := fix(ctx, r); err != nil {
			r.logger.Warn("could not recover from missing " + header + ": " + err.Error())
		}
	}
}

// recoverWxWidgets adds the flags reported by wx-config.
func recoverWxWidgets(ctx context.Context, r *Resolver) error {
	r.logger.Info("wxWidgets detected")
	cflags, err := r.toolchain.QueryFlags(ctx, "wx-config", "--cxxflags")
	if err != nil {
		return err
	}
	lflags, err := r.toolchain.QueryFlags(ctx, "wx-config", "--gl-libs", "--libs")
	if err != nil {
		return err
	}
	r.state.AddCompilerOptions(cflags...)
	r.state.AddLinkerOptions(lflags...)
	return nil
}

// absolutize locates each relative path as given from the project root, then
// from the working directory, then in each include directory. Paths found
// nowhere are kept relative.
func (r *Resolver) absolutize(paths []string) []string {
	includes := r.state.IncludePaths()
	out := make([]string, 0, len(paths)+1)
	for _, p := range paths {
		out = append(out, r.locate(p, includes))
	}
	return out
}

func (r *Resolver) locate(path string, includes []string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if candidate := filepath.Join(r.cfg.Root, path); r.fs.Exists(candidate) {
		return candidate
	}
	if r.wd != "" && r.wd != r.cfg.Root {
		if candidate := filepath.Join(r.wd, path); r.fs.Exists(candidate) {
			return candidate
		}
	}
	for _, dir := range includes {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(r.cfg.Root, dir)
		}
		if candidate := filepath.Join(dir, path); r.fs.Exists(candidate) {
			return candidate
		}
	}
	return path
}
