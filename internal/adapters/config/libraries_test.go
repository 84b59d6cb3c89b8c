package config_test

import (
	"path/filepath"
	"testing"

	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLibraries(t *testing.T) {
	loader, home, root := setup(t)

	write(t, filepath.Join(root, "libraries.hcl"), `
library "physics" {
  linkage    = "static"
  release    = "physics"
  debug      = "physicsd"
  headers    = ["physics/World.h"]
  depends_on = ["zlib"]
}

library "Metal" {
  linkage           = "framework"
  release_framework = "Metal"
  headers           = ["Metal/Metal.h"]
  symbols           = ["MTLCreateSystemDefaultDevice"]
}

link_order {
  dependent  = "physics"
  dependency = "png"
}
`)
	write(t, filepath.Join(home, ".ice", "libraries.hcl"), `
library "sqlite3" {
  linkage = "dynamic"
  release = "sqlite3"
  headers = ["sqlite3.h"]
  deploy  = true
}
`)

	decls, err := loader.LoadLibraries(root)
	require.NoError(t, err)

	require.Len(t, decls.Libraries, 3)
	assert.Equal(t, []string{
		filepath.Join(root, "libraries.hcl"),
		filepath.Join(home, ".ice", "libraries.hcl"),
	}, decls.Files)

	physics := decls.Libraries[0]
	assert.Equal(t, "physics", physics.Name())
	assert.Equal(t, domain.LinkageStatic, physics.Linkage())
	assert.Equal(t, "physicsd", physics.Binary(domain.TargetDebug))
	assert.Equal(t, []string{"zlib"}, physics.DependsOn())

	metal := decls.Libraries[1]
	assert.Equal(t, domain.LinkageFramework, metal.Linkage())
	assert.Equal(t, "Metal", metal.Framework(domain.TargetDebug))
	assert.Equal(t, []string{"MTLCreateSystemDefaultDevice"}, metal.Symbols())

	sqlite := decls.Libraries[2]
	assert.Equal(t, "sqlite3", sqlite.Binary(domain.TargetDebug))
	assert.True(t, sqlite.Deploy())

	assert.Equal(t, []domain.OrderingPair{{Dependent: "physics", Dependency: "png"}}, decls.Pairs)
}

func TestLoadLibraries_None(t *testing.T) {
	loader, _, root := setup(t)

	decls, err := loader.LoadLibraries(root)
	require.NoError(t, err)
	assert.Empty(t, decls.Libraries)
	assert.Empty(t, decls.Pairs)
	assert.Empty(t, decls.Files)
}

func TestLoadLibraries_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "syntax",
			content: `library "a" {`,
			wantErr: domain.ErrLibraryDeclaration,
		},
		{
			name:    "missing linkage",
			content: `library "a" { release = "a" }`,
			wantErr: domain.ErrLibraryDeclaration,
		},
		{
			name:    "unknown linkage",
			content: `library "a" { linkage = "shared" }`,
			wantErr: domain.ErrUnknownLinkage,
		},
		{
			name:    "invalid combination",
			content: "library \"a\" {\n  linkage = \"static\"\n  release = \"a\"\n  deploy = true\n}\n",
			wantErr: domain.ErrInvalidLibrary,
		},
		{
			name:    "incomplete link order",
			content: "link_order {\n  dependent = \"a\"\n  dependency = \"\"\n}\n",
			wantErr: domain.ErrLibraryDeclaration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _, root := setup(t)
			write(t, filepath.Join(root, "libraries.hcl"), tt.content)

			_, err := loader.LoadLibraries(root)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
