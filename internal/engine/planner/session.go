package planner

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/RomkoSI/ice/internal/core/ports"
	"github.com/RomkoSI/ice/internal/engine/discovery"
	"github.com/RomkoSI/ice/internal/engine/resolver"
	"github.com/dominikbraun/graph"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// session is the state of one invocation.
type session struct {
	p         *Planner
	log       ports.Logger
	target    domain.BuildTarget
	cfg       *domain.Config
	decls     *domain.LibraryDeclarations
	sources   []string
	governing time.Time
	snapshot  *domain.Snapshot
	catalog   *domain.Catalog
	cache     *domain.DependencyCache
	state     *domain.State
	resolver  *resolver.Resolver
	discovery *discovery.Discovery
	deps      map[string][]string
}

func (p *Planner) open(ctx context.Context, req Request, invocation string) (*session, error) {
	_, span := p.tracer.Start(ctx, "load")
	defer span.End()

	log := p.logger.With("invocation", shortID(invocation))

	cfg, err := p.loader.Load(req.Root)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	decls, err := p.loader.LoadLibraries(cfg.Root)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s := &session{
		p:       p,
		log:     log,
		target:  req.Target,
		cfg:     cfg,
		decls:   decls,
		sources: slices.Sorted(p.fs.WalkSources(cfg.Root, cfg.SourceDirs, cfg.Exclude)),
		deps:    make(map[string][]string),
	}
	s.governing = s.governingTime()

	s.snapshot, err = p.store.Load(cfg.Root, s.governing)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := s.buildCatalog(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.cache = s.snapshot.Target(req.Target)
	s.state = domain.NewState(cfg.Settings(req.Target), s.cache.Settings())
	s.resolver = resolver.New(p.toolchain, p.times, p.fs, log, cfg, s.cache, s.state, resolver.WithClock(p.now))
	s.discovery = discovery.New(p.fs, p.loader, log, s.catalog, s.snapshot, s.state, cfg.Root)

	span.SetAttribute("sources", len(s.sources))
	return s, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// governingTime is the newest of the engine binary and the configuration
// files. Objects older than it are stale regardless of their sources.
func (s *session) governingTime() time.Time {
	files := []string{s.cfg.UserFile, s.cfg.ProjectFile}
	files = append(files, s.decls.Files...)
	if exe, err := s.p.executable(); err == nil {
		files = append(files, exe)
	}

	governing := domain.EpochZero
	for _, f := range files {
		if f == "" {
			continue
		}
		if ts := s.p.times.TimestampOf(f); ts.After(governing) {
			governing = ts
		}
	}
	return governing
}

// buildCatalog layers declared libraries and libraries discovered by earlier
// builds over the built-in table.
func (s *session) buildCatalog() error {
	catalog, err := domain.NewBuiltinCatalog(s.p.platform)
	if err != nil {
		return err
	}
	for _, lib := range s.decls.Libraries {
		if err := catalog.Define(lib); err != nil {
			return err
		}
	}
	for _, lib := range s.snapshot.Libraries() {
		if catalog.Has(lib.Name()) {
			continue
		}
		if err := catalog.DefineCustom(lib); err != nil {
			return err
		}
	}
	s.catalog = catalog
	return nil
}

type resolution struct {
	needsFurtherResolution bool
	deps                   []string
}

// resolve computes the closures of files, discovers sibling libraries for
// headers that could not be located, and resolves the affected files again.
func (s *session) resolve(ctx context.Context, files []string) error {
	ctx, span := s.p.tracer.Start(ctx, "dependencies")
	defer span.End()

	results, err := s.resolveAll(ctx, files)
	if err != nil {
		span.RecordError(err)
		return err
	}

	var rerun, missing []string
	parents := make(map[string][]string)
	for i, file := range files {
		s.deps[file] = results[i].deps
		if results[i].needsFurtherResolution {
			rerun = append(rerun, file)
		}
		for _, dep := range results[i].deps {
			if !filepath.IsAbs(dep) {
				missing = append(missing, dep)
				parents[dep] = append(parents[dep], file)
			}
		}
	}
	span.SetAttribute("rerun", len(rerun))

	if len(missing) == 0 {
		return nil
	}

	if err := s.discovery.Discover(ctx, missing, parents); err != nil {
		span.RecordError(err)
		return err
	}

	results, err = s.resolveAll(ctx, rerun)
	if err != nil {
		span.RecordError(err)
		return err
	}
	for i, file := range rerun {
		s.deps[file] = results[i].deps
	}
	return nil
}

func (s *session) resolveAll(ctx context.Context, files []string) ([]resolution, error) {
	results := make([]resolution, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, file := range files {
		g.Go(func() error {
			ctx, span := s.p.tracer.Start(ctx, "resolve")
			defer span.End()
			span.SetAttribute("file", s.rel(file))

			need, deps, err := s.resolver.Resolve(ctx, file)
			if err != nil {
				span.RecordError(err)
				return err
			}
			results[i] = resolution{needsFurtherResolution: need, deps: deps}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *session) rel(path string) string {
	if rel, err := filepath.Rel(s.cfg.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// objectPath maps a source to objDir/<target>/<relative path>.o.
func (s *session) objectPath(source string) string {
	rel := s.rel(source)
	if filepath.IsAbs(rel) {
		rel = filepath.Base(rel)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + domain.ObjectExt
	return filepath.Join(s.cfg.ObjPath(s.target), rel)
}

// evaluate decides whether source must be recompiled.
func (s *session) evaluate(source string) domain.RebuildReason {
	obj := s.objectPath(source)
	objTime := s.p.times.TimestampOf(obj)
	reason := domain.RebuildReason{Source: source, Object: obj, ObjectTime: objTime}

	if objTime.Before(s.governing) {
		reason.Cause = domain.CauseGoverning
		return reason
	}
	if ts := s.p.times.TimestampOf(source); ts.After(objTime) {
		reason.Cause, reason.Culprit, reason.CulpritTime = domain.CauseSourceNewer, source, ts
		return reason
	}
	for _, dep := range s.deps[source] {
		if dep == source {
			continue
		}
		if ts := s.p.times.TimestampOf(dep); ts.After(objTime) {
			reason.Cause, reason.Culprit, reason.CulpritTime = domain.CauseDependencyNewer, dep, ts
			return reason
		}
	}
	return reason
}

// unresolved lists the dependencies that are still relative after discovery.
func (s *session) unresolved() []string {
	var out []string
	for _, deps := range s.deps {
		for _, dep := range deps {
			if !filepath.IsAbs(dep) {
				out = append(out, dep)
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// linkOrder computes the required libraries and sorts them for the linker.
func (s *session) linkOrder(ctx context.Context) ([]string, error) {
	ctx, span := s.p.tracer.Start(ctx, "link order")
	defer span.End()

	required := s.requiredLibraries(ctx)
	pairs := slices.Concat(domain.BuiltinOrderingPairs(), s.decls.Pairs)
	order, err := domain.LinkOrder(required, s.catalog, pairs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("libraries", len(order))
	return order, nil
}

func (s *session) requiredLibraries(ctx context.Context) []string {
	var names []string
	for _, name := range s.cfg.Libraries {
		if s.catalog.Has(name) {
			names = append(names, name)
			continue
		}
		s.warn("Unknown library: '" + name + "'.")
	}
	names = append(names, s.state.UsesLibraries()...)

	var keys []string
	for _, deps := range s.deps {
		for _, dep := range deps {
			if dep != s.cfg.UserFile {
				keys = append(keys, headerKeys(dep)...)
			}
		}
	}
	names = append(names, s.catalog.TriggeredBy(keys...)...)
	names = append(names, s.symbolTriggers(ctx)...)

	return s.closure(names)
}

// headerKeys returns the trailing one, two and three path elements of path,
// which is how trigger headers such as "gl.h" or "GL/glfw3.h" are named.
func headerKeys(path string) []string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	var keys []string
	for n := 1; n <= 3 && n <= len(parts); n++ {
		keys = append(keys, strings.Join(parts[len(parts)-n:], "/"))
	}
	return keys
}

// symbolTriggers maps the undefined symbols of existing objects to libraries.
func (s *session) symbolTriggers(ctx context.Context) []string {
	var objects []string
	for _, source := range s.sources {
		if obj := s.objectPath(source); s.p.fs.Exists(obj) {
			objects = append(objects, obj)
		}
	}
	if len(objects) == 0 {
		return nil
	}

	symbols, err := s.p.toolchain.UndefinedSymbols(ctx, objects...)
	if err != nil {
		s.log.Warn("could not read object symbols: " + err.Error())
		return nil
	}
	return s.catalog.TriggeredBy(symbols...)
}

// closure adds every transitive depends-on entry known to the catalog and
// drops libraries that cannot be linked on the platform.
func (s *session) closure(names []string) []string {
	seen := make(map[string]bool)
	queue := slices.Clone(names)
	var out []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true

		lib, ok := s.catalog.Lookup(name)
		if !ok {
			continue
		}
		if lib.LinkableOn(s.p.platform) {
			out = append(out, name)
		}
		queue = append(queue, lib.DependsOn()...)
	}
	slices.Sort(out)
	return out
}

func (s *session) warn(text string) {
	if s.snapshot.ShouldWarn(text, s.p.now()) {
		s.log.Warn(text)
	}
}

// projectOrder sorts the project and the sibling projects it uses, directly
// or through the projects recorded in their own dependency caches, so that
// every project comes after the projects it uses.
func (s *session) projectOrder() ([]string, error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	if err := g.AddVertex(s.cfg.Root); err != nil {
		return nil, err
	}

	visited := map[string]bool{s.cfg.Root: true}
	type pending struct {
		project string
		uses    []string
	}
	queue := []pending{{project: s.cfg.Root, uses: s.state.UsesProjects()}}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		for _, used := range next.uses {
			if err := g.AddVertex(used); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
				return nil, err
			}
			if err := g.AddEdge(used, next.project); err != nil {
				switch {
				case errors.Is(err, graph.ErrEdgeAlreadyExists):
				case errors.Is(err, graph.ErrEdgeCreatesCycle):
					cycle := next.project + " -> " + used
					return nil, zerr.With(zerr.Wrap(domain.ErrCycleDetected, "projects use each other: "+cycle), "cycle", cycle)
				default:
					return nil, err
				}
			}

			if visited[used] {
				continue
			}
			visited[used] = true

			snapshot, err := s.p.store.Load(used, domain.EpochZero)
			if err != nil {
				return nil, err
			}
			queue = append(queue, pending{project: used, uses: snapshot.Target(s.target).Settings().UsesProjects})
		}
	}

	return graph.StableTopologicalSort(g, func(a, b string) bool { return a < b })
}

// save persists the records, the search state additions, and the libraries
// registered during this invocation.
func (s *session) save() error {
	s.cache.SetSettings(s.state.Extra())
	s.snapshot.SetLibraries(s.catalog.Custom())
	return s.p.store.Save(s.cfg.Root, s.snapshot)
}
