package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.trai.ch/zerr"
)

// LoadLibraries reads libraries.hcl from root and from ~/.ice. Project
// declarations come first.
func (l *Loader) LoadLibraries(root string) (*domain.LibraryDeclarations, error) {
	home, err := l.homeDir()
	if err != nil {
		return nil, err
	}

	decls := &domain.LibraryDeclarations{}
	parser := hclparse.NewParser()
	for _, path := range []string{
		filepath.Join(root, domain.LibraryFileName),
		domain.DefaultUserLibraryPath(home),
	} {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		file, err := decodeLibraryFile(parser, path)
		if err != nil {
			return nil, err
		}
		if err := appendDeclarations(decls, file, path); err != nil {
			return nil, err
		}
		decls.Files = append(decls.Files, path)
		l.Logger.Debug("loaded library declarations " + path)
	}
	return decls, nil
}

func decodeLibraryFile(parser *hclparse.Parser, path string) (*LibraryFile, error) {
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, zerr.With(zerr.Wrap(domain.ErrLibraryDeclaration, diags.Error()), "file", path)
	}

	var file LibraryFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
		return nil, zerr.With(zerr.Wrap(domain.ErrLibraryDeclaration, diags.Error()), "file", path)
	}
	return &file, nil
}

func appendDeclarations(decls *domain.LibraryDeclarations, file *LibraryFile, path string) error {
	for _, block := range file.Libraries {
		lib, err := block.toLibrary()
		if err != nil {
			return zerr.With(zerr.With(err, "file", path), "library", block.Name)
		}
		decls.Libraries = append(decls.Libraries, lib)
	}

	for _, block := range file.LinkOrder {
		if block.Dependent == "" || block.Dependency == "" {
			return zerr.With(zerr.Wrap(domain.ErrLibraryDeclaration, "link_order needs dependent and dependency"), "file", path)
		}
		decls.Pairs = append(decls.Pairs, domain.OrderingPair{Dependent: block.Dependent, Dependency: block.Dependency})
	}
	return nil
}

func (b *LibraryBlock) toLibrary() (*domain.Library, error) {
	linkage, err := domain.ParseLinkage(b.Linkage)
	if err != nil {
		return nil, err
	}

	opts := []domain.LibraryOption{
		domain.WithHeaders(b.Headers...),
		domain.WithSymbols(b.Symbols...),
		domain.WithDependsOn(b.DependsOn...),
		domain.WithDeploy(b.Deploy),
	}
	if b.Release != "" || b.Debug != "" {
		debug := b.Debug
		if debug == "" {
			debug = b.Release
		}
		opts = append(opts, domain.WithBinaries(b.Release, debug))
	}
	if b.ReleaseFramework != "" || b.DebugFramework != "" {
		debug := b.DebugFramework
		if debug == "" {
			debug = b.ReleaseFramework
		}
		opts = append(opts, domain.WithFrameworks(b.ReleaseFramework, debug))
	}
	return domain.NewLibrary(b.Name, linkage, opts...)
}
