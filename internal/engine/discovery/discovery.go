// Package discovery finds sibling library projects that provide headers the
// current project includes but cannot locate.
package discovery

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/RomkoSI/ice/internal/core/ports"
	"go.trai.ch/zerr"
)

// libraryExts maps sibling directory extensions to the linkage they imply.
var libraryExts = map[string]domain.Linkage{
	".lib": domain.LinkageStatic,
	".a":   domain.LinkageStatic,
	".so":  domain.LinkageDynamic,
	".dll": domain.LinkageDynamic,
}

// Discovery registers sibling libraries into the catalog and extends the
// search state. Calls to Discover are serialized.
type Discovery struct {
	mu       sync.Mutex
	fs       ports.FileSystem
	loader   ports.ConfigLoader
	logger   ports.Logger
	catalog  *domain.Catalog
	snapshot *domain.Snapshot
	state    *domain.State
	root     string
	depth    int
	now      func() time.Time
}

// New creates a Discovery for the project at root.
func New(
	fsys ports.FileSystem,
	loader ports.ConfigLoader,
	logger ports.Logger,
	catalog *domain.Catalog,
	snapshot *domain.Snapshot,
	state *domain.State,
	root string,
) *Discovery {
	return &Discovery{
		fs:       fsys,
		loader:   loader,
		logger:   logger,
		catalog:  catalog,
		snapshot: snapshot,
		state:    state,
		root:     root,
		depth:    domain.SiblingDepth,
		now:      time.Now,
	}
}

// Discover resolves each missing header against the active include paths
// and then against sibling library projects. parents maps a header to the
// sources that include it. Headers found nowhere produce a throttled warning.
func (d *Discovery) Discover(ctx context.Context, missing []string, parents map[string][]string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	headers := slices.Clone(missing)
	slices.Sort(headers)
	headers = slices.Compact(headers)

	var candidates []string
	for _, dir := range d.fs.SiblingDirs(d.root, d.depth) {
		if _, ok := libraryExts[strings.ToLower(filepath.Ext(dir))]; ok {
			candidates = append(candidates, dir)
		}
	}

	for _, header := range headers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.onIncludePath(header) {
			continue
		}

		found := false
		for _, dir := range candidates {
			if !d.fs.Exists(filepath.Join(dir, domain.IncludeDirName, header)) {
				continue
			}
			if err := d.useSibling(dir, header, parents[header]); err != nil {
				return err
			}
			found = true
			break
		}

		if !found {
			text := "Header not found: '" + header + "'."
			if d.snapshot.ShouldWarn(text, d.now()) {
				d.logger.Warn(text)
			}
		}
	}
	return nil
}

func (d *Discovery) onIncludePath(header string) bool {
	if filepath.IsAbs(header) {
		return d.fs.Exists(header)
	}
	if d.fs.Exists(filepath.Join(d.root, header)) {
		return true
	}
	for _, dir := range d.state.IncludePaths() {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(d.root, dir)
		}
		if d.fs.Exists(filepath.Join(dir, header)) {
			return true
		}
	}
	return false
}

// useSibling registers the library built by the sibling project at dir and
// adds its include and library directories.
func (d *Discovery) useSibling(dir, header string, includedBy []string) error {
	ext := filepath.Ext(dir)
	name := strings.TrimSuffix(filepath.Base(dir), ext)

	if !d.catalog.Has(name) {
		lib, err := domain.NewLibrary(name, libraryExts[strings.ToLower(ext)],
			domain.WithBinaries(name, name+"d"),
			domain.WithHeaders(filepath.Base(header)),
		)
		if err != nil {
			return err
		}
		if err := d.catalog.DefineCustom(lib); err != nil {
			return err
		}
	}
	d.state.AddUsesLibrary(name)

	if !d.state.AddUsesProject(dir) {
		return nil
	}

	d.logger.Info("Detected dependency on " + dir + " from inclusion of " + header + " by " + d.shortName(includedBy))

	sibling, err := d.loader.Load(dir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to load sibling project configuration"), "project", dir)
	}
	d.state.AddIncludePath(filepath.Join(dir, domain.IncludeDirName))
	d.state.AddLibraryPath(sibling.LibraryOutputPath())
	return nil
}

func (d *Discovery) shortName(includedBy []string) string {
	if len(includedBy) == 0 {
		return "<unknown>"
	}
	rel, err := filepath.Rel(d.root, includedBy[0])
	if err != nil {
		return includedBy[0]
	}
	return rel
}
