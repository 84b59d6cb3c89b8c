// Package app implements the application layer for ice.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/RomkoSI/ice/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"github.com/RomkoSI/ice/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/RomkoSI/ice/internal/core/ports"
	"github.com/RomkoSI/ice/internal/engine/planner"
	"go.trai.ch/zerr"
)

// headerExts are the extensions of files that can be included by a source.
var headerExts = []string{".h", ".hh", ".hpp", ".hxx", ".inl"}

// Engine plans builds for a project.
type Engine interface {
	Plan(ctx context.Context, req planner.Request) (*domain.BuildReport, error)
	Explain(ctx context.Context, req planner.Request, file string) (*domain.Explanation, error)
	Libraries(ctx context.Context, req planner.Request) ([]*domain.Library, error)
}

// App represents the main application logic.
type App struct {
	engine  Engine
	watcher ports.Watcher
	times   ports.Timestamps
	tracer  ports.Tracer
	logger  ports.Logger
	out     io.Writer
	window  time.Duration
	home    func() (string, error)
}

// New creates a new App instance.
func New(
	engine Engine,
	w ports.Watcher,
	times ports.Timestamps,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		engine:  engine,
		watcher: w,
		times:   times,
		tracer:  tracer,
		logger:  log,
		out:     os.Stdout,
		window:  watcher.DefaultDebounceWindow,
		home:    os.UserHomeDir,
	}
}

// WithOutput redirects reports to w.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithDebounceWindow sets how long watch mode waits for changes to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.window = d
	return a
}

// Options are the settings shared by every command.
type Options struct {
	// Root is the project directory. The working directory is used when empty.
	Root      string
	Target    string
	Verbose   bool
	LogFormat string
}

func (a *App) setup(opts Options) (planner.Request, error) {
	a.logger.SetVerbose(opts.Verbose)
	if opts.LogFormat != "" {
		if err := a.logger.SetFormat(opts.LogFormat); err != nil {
			return planner.Request{}, err
		}
	}

	target, err := domain.ParseBuildTarget(opts.Target)
	if err != nil {
		return planner.Request{}, err
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return planner.Request{}, zerr.With(zerr.Wrap(err, "failed to resolve project root"), "root", opts.Root)
	}

	return planner.Request{Root: root, Target: target}, nil
}

// Build plans the project and prints the build report.
func (a *App) Build(ctx context.Context, opts Options) error {
	req, err := a.setup(opts)
	if err != nil {
		return err
	}
	defer a.shutdown(ctx)

	report, err := a.engine.Plan(ctx, req)
	if err != nil {
		return err
	}
	return RenderReport(a.out, report)
}

// Explain prints why file would be rebuilt and what it depends on.
func (a *App) Explain(ctx context.Context, opts Options, file string) error {
	req, err := a.setup(opts)
	if err != nil {
		return err
	}
	defer a.shutdown(ctx)

	if !filepath.IsAbs(file) {
		if file, err = filepath.Abs(file); err != nil {
			return zerr.Wrap(err, "failed to resolve file")
		}
	}

	explanation, err := a.engine.Explain(ctx, req, file)
	if err != nil {
		return err
	}
	return RenderExplanation(a.out, req.Root, explanation)
}

// Libraries prints every library known to the project.
func (a *App) Libraries(ctx context.Context, opts Options) error {
	req, err := a.setup(opts)
	if err != nil {
		return err
	}
	defer a.shutdown(ctx)

	libs, err := a.engine.Libraries(ctx, req)
	if err != nil {
		return err
	}
	return RenderLibraries(a.out, req.Target, libs)
}

// Watch builds the project and rebuilds it whenever a source, header or
// configuration file changes. It returns when ctx is canceled.
func (a *App) Watch(ctx context.Context, opts Options) error {
	req, err := a.setup(opts)
	if err != nil {
		return err
	}
	defer a.shutdown(ctx)

	report, err := a.engine.Plan(ctx, req)
	if err != nil {
		return err
	}
	if err := RenderReport(a.out, report); err != nil {
		return err
	}

	if err := a.watcher.Start(ctx, a.watchPaths(report)...); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	changes := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.window, func(paths []string) {
		select {
		case changes <- paths:
		case <-ctx.Done():
		}
	})
	defer debouncer.Stop()

	go func() {
		for event := range a.watcher.Events() {
			if relevant(event.Path) {
				debouncer.Add(event.Path)
			}
		}
	}()

	a.logger.Info("Watching " + req.Root + " for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-changes:
			a.logger.Debug("changed: " + strings.Join(paths, ", "))
			a.times.Invalidate()

			report, err := a.engine.Plan(ctx, req)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				a.logger.Error(err)
				continue
			}
			if err := RenderReport(a.out, report); err != nil {
				return err
			}
		}
	}
}

// watchPaths lists the project directory, the sibling projects it uses, the
// include directories and the user configuration file.
func (a *App) watchPaths(report *domain.BuildReport) []string {
	paths := []string{report.Root}
	paths = append(paths, report.Projects...)
	paths = append(paths, report.Settings.IncludePaths...)
	if home, err := a.home(); err == nil && home != "" {
		paths = append(paths, domain.DefaultUserConfigPath(home), domain.DefaultUserLibraryPath(home))
	}
	slices.Sort(paths)
	return slices.Compact(paths)
}

// relevant reports whether a change to path can affect a build plan.
func relevant(path string) bool {
	switch filepath.Base(path) {
	case domain.ProjectFileName, domain.UserFileName, domain.LibraryFileName:
		return true
	}
	return fs.IsSource(path) || slices.Contains(headerExts, strings.ToLower(filepath.Ext(path)))
}

func (a *App) shutdown(ctx context.Context) {
	if err := a.tracer.Shutdown(context.WithoutCancel(ctx)); err != nil {
		a.logger.Warn("failed to flush traces: " + err.Error())
	}
}
