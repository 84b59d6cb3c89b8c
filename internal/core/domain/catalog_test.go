package domain_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func mustLibrary(t *testing.T, name string, opts ...domain.LibraryOption) *domain.Library {
	t.Helper()
	opts = append([]domain.LibraryOption{domain.WithBinaries(name, name+"d")}, opts...)
	lib, err := domain.NewLibrary(name, domain.LinkageStatic, opts...)
	require.NoError(t, err)
	return lib
}

func TestCatalog_DefineDuplicate(t *testing.T) {
	c := domain.NewCatalog()
	require.NoError(t, c.Define(mustLibrary(t, "mylib")))

	err := c.Define(mustLibrary(t, "mylib"))
	require.ErrorIs(t, err, domain.ErrDuplicateLibrary)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "mylib", zErr.Metadata()["library"])
}

func TestCatalog_DuplicateOfBuiltin(t *testing.T) {
	c, err := domain.NewBuiltinCatalog(domain.PlatformLinux)
	require.NoError(t, err)

	err = c.DefineCustom(mustLibrary(t, "zlib"))
	require.ErrorIs(t, err, domain.ErrDuplicateLibrary)
	assert.Empty(t, c.Custom())
}

func TestCatalog_TriggeredBy(t *testing.T) {
	c := domain.NewCatalog()
	require.NoError(t, c.Define(mustLibrary(t, "gfx", domain.WithHeaders("common.h", "gfx.h"), domain.WithSymbols("gfx_init"))))
	require.NoError(t, c.Define(mustLibrary(t, "audio", domain.WithHeaders("common.h"), domain.WithSymbols("snd_open"))))
	require.NoError(t, c.Define(mustLibrary(t, "net")))

	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{name: "header", keys: []string{"gfx.h"}, want: []string{"gfx"}},
		{name: "ambiguous header triggers all", keys: []string{"common.h"}, want: []string{"audio", "gfx"}},
		{name: "symbol", keys: []string{"snd_open"}, want: []string{"audio"}},
		{name: "mixed keys are deduplicated", keys: []string{"gfx_init", "gfx.h", "common.h"}, want: []string{"audio", "gfx"}},
		{name: "unknown", keys: []string{"stdio.h"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.TriggeredBy(tt.keys...))
		})
	}
}

func TestCatalog_Builtin(t *testing.T) {
	c, err := domain.NewBuiltinCatalog(domain.PlatformLinux)
	require.NoError(t, err)

	assert.Equal(t, []string{"OpenGL"}, c.TriggeredBy("gl.h"))
	assert.Equal(t, []string{"OpenGL", "zlib"}, c.TriggeredBy("glBegin", "zlib.h"))
	assert.Equal(t, []string{"glew"}, c.TriggeredBy("GL/glew.h"))

	names := c.Names()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "GLG3D")

	g3d, ok := c.Lookup("G3D")
	require.True(t, ok)
	assert.Contains(t, g3d.DependsOn(), "X11")
	assert.Equal(t, "G3Dd", g3d.Binary(domain.TargetDebug))
	assert.Equal(t, "G3D", g3d.Binary(domain.TargetRelease))
	assert.False(t, c.Has("NoSuchLibrary"))
}

func TestCatalog_BuiltinPlatformConditionals(t *testing.T) {
	darwin, err := domain.NewBuiltinCatalog(domain.PlatformDarwin)
	require.NoError(t, err)
	linux, err := domain.NewBuiltinCatalog(domain.PlatformLinux)
	require.NoError(t, err)

	sdlMac, _ := darwin.Lookup("SDL")
	sdlLinux, _ := linux.Lookup("SDL")
	assert.Equal(t, domain.LinkageFramework, sdlMac.Linkage())
	assert.Equal(t, domain.LinkageDynamic, sdlLinux.Linkage())

	glfwMac, _ := darwin.Lookup("glfw")
	glfwLinux, _ := linux.Lookup("glfw")
	assert.ElementsMatch(t, []string{"IOKit", "CoreVideo"}, glfwMac.DependsOn())
	assert.ElementsMatch(t, []string{"X11", "Xrandr", "Xi", "Xxf86vm", "Xcursor"}, glfwLinux.DependsOn())

	glg3dMac, _ := darwin.Lookup("GLG3D")
	assert.Contains(t, glg3dMac.DependsOn(), "AppleGL")
	assert.Contains(t, glg3dMac.DependsOn(), "FMOD")

	cocoa, _ := linux.Lookup("Cocoa")
	assert.False(t, cocoa.LinkableOn(domain.PlatformLinux))
	assert.True(t, cocoa.LinkableOn(domain.PlatformDarwin))
}

func TestCatalog_Custom(t *testing.T) {
	c := domain.NewCatalog()
	require.NoError(t, c.Define(mustLibrary(t, "builtin")))
	require.NoError(t, c.DefineCustom(mustLibrary(t, "sibling")))

	custom := c.Custom()
	require.Len(t, custom, 1)
	assert.Equal(t, "sibling", custom[0].Name())
	assert.Equal(t, []string{"builtin", "sibling"}, c.Names())
}

func TestCatalog_ConcurrentAccess(t *testing.T) {
	c := domain.NewCatalog()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.DefineCustom(mustLibrary(t, string(rune('a'+i)), domain.WithHeaders("shared.h")))
		}()
		go func() {
			defer wg.Done()
			_ = c.TriggeredBy("shared.h")
			_ = c.Names()
		}()
	}
	wg.Wait()

	assert.Len(t, c.TriggeredBy("shared.h"), 16)
	assert.Len(t, c.Custom(), 16)
}
