// Package planner computes the build set of a project: which sources must be
// recompiled, which libraries are linked in which order, and which sibling
// projects must be built first.
package planner

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/RomkoSI/ice/internal/core/ports"
	"github.com/google/uuid"
	"go.trai.ch/zerr"
)

// Request selects the project and build target to plan.
type Request struct {
	// Root is the absolute project root directory.
	Root   string
	Target domain.BuildTarget
}

// Planner resolves projects into build reports.
type Planner struct {
	loader     ports.ConfigLoader
	fs         ports.FileSystem
	times      ports.Timestamps
	toolchain  ports.Toolchain
	store      ports.SnapshotStore
	tracer     ports.Tracer
	logger     ports.Logger
	platform   domain.Platform
	executable func() (string, error)
	now        func() time.Time
	newID      func() string
}

// Option configures a Planner.
type Option func(*Planner)

// WithPlatform sets the platform libraries are linked for.
func WithPlatform(platform domain.Platform) Option {
	return func(p *Planner) {
		p.platform = platform
	}
}

// WithExecutable sets the engine binary whose timestamp takes part in the
// governing timestamp.
func WithExecutable(path string) Option {
	return func(p *Planner) {
		p.executable = func() (string, error) { return path, nil }
	}
}

// WithClock sets the clock used for new records and warnings.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) {
		p.now = now
	}
}

// WithInvocationIDs sets the generator of invocation ids.
func WithInvocationIDs(newID func() string) Option {
	return func(p *Planner) {
		p.newID = newID
	}
}

// New creates a Planner.
func New(
	loader ports.ConfigLoader,
	fsys ports.FileSystem,
	times ports.Timestamps,
	toolchain ports.Toolchain,
	store ports.SnapshotStore,
	tracer ports.Tracer,
	logger ports.Logger,
	opts ...Option,
) *Planner {
	p := &Planner{
		loader:     loader,
		fs:         fsys,
		times:      times,
		toolchain:  toolchain,
		store:      store,
		tracer:     tracer,
		logger:     logger,
		platform:   domain.HostPlatform(),
		executable: os.Executable,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan resolves every source of the project and reports what must be rebuilt
// and linked. The dependency cache is saved once the plan succeeded.
func (p *Planner) Plan(ctx context.Context, req Request) (*domain.BuildReport, error) {
	invocation := p.newID()
	ctx, span := p.tracer.Start(ctx, "build")
	defer span.End()
	span.SetAttribute("invocation", invocation)
	span.SetAttribute("target", req.Target.String())

	report, err := p.plan(ctx, req, invocation)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("rebuild", len(report.Rebuild))
	return report, nil
}

func (p *Planner) plan(ctx context.Context, req Request, invocation string) (*domain.BuildReport, error) {
	s, err := p.open(ctx, req, invocation)
	if err != nil {
		return nil, err
	}

	if err := s.resolve(ctx, s.sources); err != nil {
		return nil, err
	}

	linkOrder, err := s.linkOrder(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectOrder()
	if err != nil {
		return nil, err
	}

	var rebuild []domain.RebuildReason
	for _, source := range s.sources {
		if reason := s.evaluate(source); reason.Rebuild() {
			rebuild = append(rebuild, reason)
		}
	}

	if err := s.save(); err != nil {
		return nil, err
	}

	s.log.Debug(strconv.Itoa(len(rebuild)) + " of " + strconv.Itoa(len(s.sources)) + " sources need rebuilding")

	return &domain.BuildReport{
		InvocationID: invocation,
		Project:      s.cfg.Name,
		Root:         s.cfg.Root,
		Target:       req.Target,
		Governing:    s.governing,
		Sources:      s.sources,
		Rebuild:      rebuild,
		LinkOrder:    linkOrder,
		Projects:     projects,
		Settings:     s.state.Settings(),
		Unresolved:   s.unresolved(),
		Dependencies: s.deps,
	}, nil
}

// Explain resolves a single source and reports why it would be rebuilt.
func (p *Planner) Explain(ctx context.Context, req Request, file string) (*domain.Explanation, error) {
	invocation := p.newID()
	ctx, span := p.tracer.Start(ctx, "explain")
	defer span.End()
	span.SetAttribute("invocation", invocation)

	s, err := p.open(ctx, req, invocation)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	file = filepath.Clean(file)
	if !slices.Contains(s.sources, file) {
		err := zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "cannot explain "+file), "file", file)
		span.RecordError(err)
		return nil, err
	}

	if err := s.resolve(ctx, []string{file}); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.save(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &domain.Explanation{
		Reason:       s.evaluate(file),
		Dependencies: s.deps[file],
		Governing:    s.governing,
	}, nil
}

// Libraries returns every library known to the project: built-in, declared,
// and discovered in earlier builds, in ascending name order.
func (p *Planner) Libraries(ctx context.Context, req Request) ([]*domain.Library, error) {
	s, err := p.open(ctx, req, p.newID())
	if err != nil {
		return nil, err
	}

	names := s.catalog.Names()
	libs := make([]*domain.Library, 0, len(names))
	for _, name := range names {
		lib, _ := s.catalog.Lookup(name)
		libs = append(libs, lib)
	}
	return libs, nil
}
