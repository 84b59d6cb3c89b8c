package domain_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

// newCatalog builds a catalog of static libraries from a name -> depends-on map.
func newCatalog(t *testing.T, deps map[string][]string) *domain.Catalog {
	t.Helper()
	c := domain.NewCatalog()
	for name, on := range deps {
		lib, err := domain.NewLibrary(name, domain.LinkageStatic,
			domain.WithBinaries(name, name+"d"),
			domain.WithDependsOn(on...),
		)
		require.NoError(t, err)
		require.NoError(t, c.Define(lib))
	}
	return c
}

func TestLinkOrder(t *testing.T) {
	tests := []struct {
		name     string
		deps     map[string][]string
		pairs    []domain.OrderingPair
		required []string
		want     []string
	}{
		{
			name: "dependencies before dependents",
			deps: map[string][]string{
				"GLG3D":  {"G3D"},
				"G3D":    {"OpenGL"},
				"OpenGL": nil,
			},
			required: []string{"GLG3D", "G3D", "OpenGL"},
			want:     []string{"OpenGL", "G3D", "GLG3D"},
		},
		{
			name: "unrelated libraries last in ascending order",
			deps: map[string][]string{
				"X":     {"Y"},
				"Y":     nil,
				"zeta":  nil,
				"alpha": nil,
			},
			required: []string{"zeta", "X", "alpha", "Y"},
			want:     []string{"Y", "X", "alpha", "zeta"},
		},
		{
			name: "edges to libraries that are not required are ignored",
			deps: map[string][]string{
				"app":  {"core", "net"},
				"core": nil,
				"net":  nil,
			},
			required: []string{"app", "core"},
			want:     []string{"core", "app"},
		},
		{
			name: "curated pair adds an edge",
			deps: map[string][]string{
				"a": nil,
				"b": nil,
				"c": nil,
			},
			pairs:    []domain.OrderingPair{{Dependent: "a", Dependency: "b"}},
			required: []string{"a", "b", "c"},
			want:     []string{"b", "a", "c"},
		},
		{
			name: "curated pair overrides the opposite table edge",
			deps: map[string][]string{
				"SDL":   {"Cocoa"},
				"Cocoa": nil,
			},
			pairs:    []domain.OrderingPair{{Dependent: "Cocoa", Dependency: "SDL"}},
			required: []string{"SDL", "Cocoa"},
			want:     []string{"SDL", "Cocoa"},
		},
		{
			name:     "duplicates are collapsed",
			deps:     map[string][]string{"m": nil},
			required: []string{"m", "m"},
			want:     []string{"m"},
		},
		{
			name:     "empty",
			deps:     map[string][]string{},
			required: nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCatalog(t, tt.deps)
			got, err := domain.LinkOrder(tt.required, c, tt.pairs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinkOrder_Cycle(t *testing.T) {
	c := newCatalog(t, map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"A"},
	})

	order, err := domain.LinkOrder([]string{"A", "B", "C"}, c, nil)
	require.ErrorIs(t, err, domain.ErrCycleDetected)
	assert.Nil(t, order)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "A -> B -> C -> A", zErr.Metadata()["cycle"])
}

func TestLinkOrder_CycleFromCuratedPair(t *testing.T) {
	c := newCatalog(t, map[string][]string{
		"A": {"B"},
		"B": nil,
		"C": {"A"},
	})
	pairs := []domain.OrderingPair{{Dependent: "B", Dependency: "C"}}

	_, err := domain.LinkOrder([]string{"A", "B", "C"}, c, pairs)
	require.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestLinkOrder_Deterministic(t *testing.T) {
	c, err := domain.NewBuiltinCatalog(domain.PlatformLinux)
	require.NoError(t, err)

	required := []string{"GLG3D", "zlib", "G3D", "ANN", "glfw", "X11", "OpenGL", "qrencode", "freeimage"}
	first, err := domain.LinkOrder(required, c, domain.BuiltinOrderingPairs())
	require.NoError(t, err)
	require.Len(t, first, len(required))

	for range 20 {
		got, err := domain.LinkOrder(required, c, domain.BuiltinOrderingPairs())
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}

	// Unrelated libraries keep their alphabetical place at the tail.
	assert.Equal(t, []string{"ANN", "qrencode"}, first[len(first)-2:])
}

func TestLinkOrder_BuiltinTableIsAcyclic(t *testing.T) {
	for _, platform := range []domain.Platform{domain.PlatformDarwin, domain.PlatformLinux, domain.PlatformWindows} {
		t.Run(string(platform), func(t *testing.T) {
			c, err := domain.NewBuiltinCatalog(platform)
			require.NoError(t, err)

			order, err := domain.LinkOrder(c.Names(), c, domain.BuiltinOrderingPairs())
			require.NoError(t, err)
			assert.ElementsMatch(t, c.Names(), order)
			assert.Less(t, slices.Index(order, "G3D"), slices.Index(order, "GLG3D"))
		})
	}
}

func TestLinkGraph_Walk(t *testing.T) {
	c := newCatalog(t, map[string][]string{"a": {"b"}, "b": nil})
	g := domain.NewLinkGraph([]string{"a", "b"}, c, nil)
	require.NoError(t, g.Sort())

	var got []string
	for name := range g.Walk() {
		got = append(got, name)
		break
	}
	assert.Equal(t, []string{"b"}, got)
}
