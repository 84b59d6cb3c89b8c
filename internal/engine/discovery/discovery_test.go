package discovery_test

import (
	"context"
	"testing"

	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/RomkoSI/ice/internal/core/ports/mocks"
	"github.com/RomkoSI/ice/internal/engine/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	fs       *mocks.MockFileSystem
	loader   *mocks.MockConfigLoader
	logger   *mocks.MockLogger
	catalog  *domain.Catalog
	snapshot *domain.Snapshot
	state    *domain.State
	existing map[string]bool
}

func newFixture(t *testing.T, catalog *domain.Catalog) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		fs:       mocks.NewMockFileSystem(ctrl),
		loader:   mocks.NewMockConfigLoader(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		catalog:  catalog,
		snapshot: domain.NewSnapshot(),
		state:    domain.NewState(domain.TargetSettings{}, domain.TargetSettings{}),
		existing: map[string]bool{},
	}
	f.fs.EXPECT().SiblingDirs("/ws/app", domain.SiblingDepth).
		Return([]string{"/ws/G3D.lib", "/ws/notes", "/ws/net.so", "/src/ws"}).
		AnyTimes()
	f.fs.EXPECT().Exists(gomock.Any()).
		DoAndReturn(func(path string) bool { return f.existing[path] }).
		AnyTimes()
	return f
}

func (f *fixture) discovery() *discovery.Discovery {
	return discovery.New(f.fs, f.loader, f.logger, f.catalog, f.snapshot, f.state, "/ws/app")
}

func TestDiscover_RegistersSiblingLibrary(t *testing.T) {
	f := newFixture(t, domain.NewCatalog())
	f.existing["/ws/G3D.lib/include/G3D/G3D.h"] = true
	f.existing["/ws/G3D.lib/include/G3D/Array.h"] = true

	f.loader.EXPECT().Load("/ws/G3D.lib").
		Return(&domain.Config{Root: "/ws/G3D.lib", BuildDir: "out"}, nil).
		Times(1)
	f.logger.EXPECT().
		Info("Detected dependency on /ws/G3D.lib from inclusion of G3D/Array.h by src/main.cpp").
		Times(1)

	parents := map[string][]string{
		"G3D/G3D.h":   {"/ws/app/src/main.cpp"},
		"G3D/Array.h": {"/ws/app/src/main.cpp"},
	}
	err := f.discovery().Discover(t.Context(), []string{"G3D/G3D.h", "G3D/Array.h", "G3D/G3D.h"}, parents)
	require.NoError(t, err)

	lib, ok := f.catalog.Lookup("G3D")
	require.True(t, ok)
	assert.Equal(t, domain.LinkageStatic, lib.Linkage())
	assert.Equal(t, "G3D", lib.Binary(domain.TargetRelease))
	assert.Equal(t, "G3Dd", lib.Binary(domain.TargetDebug))
	assert.Equal(t, []string{"Array.h"}, lib.Headers())
	require.Len(t, f.catalog.Custom(), 1)

	settings := f.state.Settings()
	assert.Equal(t, []string{"/ws/G3D.lib/include"}, settings.IncludePaths)
	assert.Equal(t, []string{"/ws/G3D.lib/out/lib"}, settings.LibraryPaths)
	assert.Equal(t, []string{"/ws/G3D.lib"}, settings.UsesProjects)
	assert.Equal(t, []string{"G3D"}, settings.UsesLibraries)
}

func TestDiscover_DynamicSibling(t *testing.T) {
	f := newFixture(t, domain.NewCatalog())
	f.existing["/ws/net.so/include/net.h"] = true

	f.loader.EXPECT().Load("/ws/net.so").Return(&domain.Config{Root: "/ws/net.so", BuildDir: "build"}, nil)
	f.logger.EXPECT().Info(gomock.Any())

	require.NoError(t, f.discovery().Discover(t.Context(), []string{"net.h"}, nil))

	lib, ok := f.catalog.Lookup("net")
	require.True(t, ok)
	assert.Equal(t, domain.LinkageDynamic, lib.Linkage())
	assert.Equal(t, []string{"/ws/net.so/build/lib"}, f.state.LibraryPaths())
}

func TestDiscover_KnownLibraryIsNotRedefined(t *testing.T) {
	catalog, err := domain.NewBuiltinCatalog(domain.PlatformLinux)
	require.NoError(t, err)
	f := newFixture(t, catalog)
	f.existing["/ws/G3D.lib/include/G3D.h"] = true

	f.loader.EXPECT().Load("/ws/G3D.lib").Return(&domain.Config{Root: "/ws/G3D.lib", BuildDir: "build"}, nil)
	f.logger.EXPECT().Info(gomock.Any())

	require.NoError(t, f.discovery().Discover(t.Context(), []string{"G3D.h"}, nil))

	assert.Empty(t, catalog.Custom())
	assert.Equal(t, []string{"G3D"}, f.state.UsesLibraries())
}

func TestDiscover_HeaderOnIncludePath(t *testing.T) {
	f := newFixture(t, domain.NewCatalog())
	f.state.AddIncludePath("/opt/include")
	f.existing["/opt/include/found.h"] = true
	f.existing["/ws/app/generated.h"] = true

	require.NoError(t, f.discovery().Discover(t.Context(), []string{"found.h", "generated.h"}, nil))

	assert.Empty(t, f.catalog.Names())
	assert.Empty(t, f.state.UsesProjects())
}

func TestDiscover_WarnsOncePerPeriod(t *testing.T) {
	f := newFixture(t, domain.NewCatalog())
	f.logger.EXPECT().Warn("Header not found: 'nowhere.h'.").Times(1)

	d := f.discovery()
	require.NoError(t, d.Discover(t.Context(), []string{"nowhere.h"}, nil))
	require.NoError(t, d.Discover(t.Context(), []string{"nowhere.h"}, nil))
}

func TestDiscover_SiblingConfigError(t *testing.T) {
	f := newFixture(t, domain.NewCatalog())
	f.existing["/ws/G3D.lib/include/G3D.h"] = true
	f.loader.EXPECT().Load("/ws/G3D.lib").Return(nil, domain.ErrConfigParse)
	f.logger.EXPECT().Info(gomock.Any())

	err := f.discovery().Discover(t.Context(), []string{"G3D.h"}, nil)
	require.ErrorIs(t, err, domain.ErrConfigParse)
}

func TestDiscover_Canceled(t *testing.T) {
	f := newFixture(t, domain.NewCatalog())
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := f.discovery().Discover(ctx, []string{"a.h"}, nil)
	require.ErrorIs(t, err, context.Canceled)
}
