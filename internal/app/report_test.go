package app_test

import (
	"bytes"
	"testing"

	"github.com/RomkoSI/ice/internal/app"
	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestRenderReport(t *testing.T) {
	tests := []struct {
		name       string
		report     *domain.BuildReport
		goldenName string
	}{
		{
			name: "stale sources",
			report: &domain.BuildReport{
				InvocationID: "0b6a1c2d-9f3e-4f55-a3f1-5d8e2b7c4a10",
				Project:      "app",
				Root:         "/work/app",
				Target:       domain.TargetDebug,
				Sources:      []string{"/work/app/src/a.cpp", "/work/app/src/b.cpp", "/work/app/src/c.cpp"},
				Rebuild: []domain.RebuildReason{
					{Source: "/work/app/src/b.cpp", Cause: domain.CauseSourceNewer, Culprit: "/work/app/src/b.cpp"},
					{Source: "/work/app/src/c.cpp", Cause: domain.CauseDependencyNewer, Culprit: "/work/app/include/c.h"},
				},
				LinkOrder: []string{"mylib", "zlib"},
				Projects:  []string{"/work/mylib.lib", "/work/app"},
				Settings: domain.TargetSettings{
					IncludePaths: []string{"/work/app/include", "/work/mylib.lib/include"},
					LibraryPaths: []string{"/work/mylib.lib/build/lib"},
				},
				Unresolved: []string{"missing.h"},
			},
			goldenName: "report_stale",
		},
		{
			name: "up to date",
			report: &domain.BuildReport{
				InvocationID: "7f00aa11",
				Project:      "app",
				Root:         "/work/app",
				Target:       domain.TargetRelease,
				Sources:      []string{"/work/app/main.cpp"},
				Projects:     []string{"/work/app"},
			},
			goldenName: "report_up_to_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")
			var buf bytes.Buffer
			require.NoError(t, app.RenderReport(&buf, tt.report))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestRenderExplanation(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	explanation := &domain.Explanation{
		Reason: domain.RebuildReason{
			Source: "/work/app/src/a.cpp",
			Object: "/work/app/build/obj/debug/src/a.o",
			Cause:  domain.CauseGoverning,
		},
		Dependencies: []string{"/work/app/src/a.cpp", "/work/app/include/a.h", "/home/u/.icompile", "gen.h"},
	}

	var buf bytes.Buffer
	require.NoError(t, app.RenderExplanation(&buf, "/work/app", explanation))

	g := goldie.New(t)
	g.Assert(t, "explanation", buf.Bytes())
}

func TestRenderLibraries(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	g3d, err := domain.NewLibrary("G3D", domain.LinkageStatic,
		domain.WithBinaries("G3D", "G3Dd"),
		domain.WithHeaders("G3D/G3D.h"),
	)
	require.NoError(t, err)
	gl, err := domain.NewLibrary("OpenGL", domain.LinkageFramework,
		domain.WithFrameworks("OpenGL", "OpenGL"),
		domain.WithHeaders("GL/gl.h"),
	)
	require.NoError(t, err)
	pthread, err := domain.NewLibrary("pthread", domain.LinkageDynamic,
		domain.WithBinaries("pthread", "pthread"),
		domain.WithSymbols("pthread_create"),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, app.RenderLibraries(&buf, domain.TargetDebug, []*domain.Library{g3d, gl, pthread}))

	g := goldie.New(t)
	g.Assert(t, "libraries", buf.Bytes())
}
