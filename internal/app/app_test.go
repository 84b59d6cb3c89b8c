package app_test

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/RomkoSI/ice/internal/app"
	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/RomkoSI/ice/internal/core/ports"
	"github.com/RomkoSI/ice/internal/core/ports/mocks"
	"github.com/RomkoSI/ice/internal/engine/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeEngine struct {
	plan      func(context.Context, planner.Request) (*domain.BuildReport, error)
	explain   func(context.Context, planner.Request, string) (*domain.Explanation, error)
	libraries func(context.Context, planner.Request) ([]*domain.Library, error)
}

func (f *fakeEngine) Plan(ctx context.Context, req planner.Request) (*domain.BuildReport, error) {
	return f.plan(ctx, req)
}

func (f *fakeEngine) Explain(ctx context.Context, req planner.Request, file string) (*domain.Explanation, error) {
	return f.explain(ctx, req, file)
}

func (f *fakeEngine) Libraries(ctx context.Context, req planner.Request) ([]*domain.Library, error) {
	return f.libraries(ctx, req)
}

type harness struct {
	watcher *mocks.MockWatcher
	times   *mocks.MockTimestamps
	tracer  *mocks.MockTracer
	logger  *mocks.MockLogger
	out     *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)
	return &harness{
		watcher: mocks.NewMockWatcher(ctrl),
		times:   mocks.NewMockTimestamps(ctrl),
		tracer:  mocks.NewMockTracer(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		out:     &bytes.Buffer{},
	}
}

func (h *harness) app(engine app.Engine) *app.App {
	return app.New(engine, h.watcher, h.times, h.tracer, h.logger).WithOutput(h.out)
}

func upToDate(req planner.Request) *domain.BuildReport {
	return &domain.BuildReport{
		InvocationID: "0b6a1c2d",
		Project:      "app",
		Root:         req.Root,
		Target:       req.Target,
		Sources:      []string{filepath.Join(req.Root, "main.cpp")},
		Projects:     []string{req.Root},
	}
}

func TestApp_Build(t *testing.T) {
	h := newHarness(t)
	root := t.TempDir()

	h.logger.EXPECT().SetVerbose(true)
	h.logger.EXPECT().SetFormat("json").Return(nil)
	h.tracer.EXPECT().Shutdown(gomock.Any()).Return(nil)

	var got planner.Request
	engine := &fakeEngine{plan: func(_ context.Context, req planner.Request) (*domain.BuildReport, error) {
		got = req
		return upToDate(req), nil
	}}

	err := h.app(engine).Build(t.Context(), app.Options{Root: root, Target: "release", Verbose: true, LogFormat: "json"})
	require.NoError(t, err)

	assert.Equal(t, planner.Request{Root: root, Target: domain.TargetRelease}, got)
	assert.Contains(t, h.out.String(), "1 source up to date")
}

func TestApp_Build_DefaultsToWorkingDirectory(t *testing.T) {
	h := newHarness(t)
	t.Chdir(t.TempDir())
	cwd, err := os.Getwd()
	require.NoError(t, err)

	h.logger.EXPECT().SetVerbose(false)
	h.tracer.EXPECT().Shutdown(gomock.Any()).Return(nil)

	engine := &fakeEngine{plan: func(_ context.Context, req planner.Request) (*domain.BuildReport, error) {
		assert.Equal(t, cwd, req.Root)
		return upToDate(req), nil
	}}

	require.NoError(t, h.app(engine).Build(t.Context(), app.Options{Target: "debug"}))
}

func TestApp_Build_Errors(t *testing.T) {
	errPlan := errors.New("plan failed")

	tests := []struct {
		name    string
		opts    app.Options
		setup   func(h *harness)
		plan    error
		wantErr error
	}{
		{
			name:    "unknown target",
			opts:    app.Options{Target: "profile"},
			setup:   func(h *harness) { h.logger.EXPECT().SetVerbose(false) },
			wantErr: domain.ErrUnknownTarget,
		},
		{
			name: "bad log format",
			opts: app.Options{Target: "debug", LogFormat: "xml"},
			setup: func(h *harness) {
				h.logger.EXPECT().SetVerbose(false)
				h.logger.EXPECT().SetFormat("xml").Return(errPlan)
			},
			wantErr: errPlan,
		},
		{
			name: "planner failure",
			opts: app.Options{Target: "debug"},
			setup: func(h *harness) {
				h.logger.EXPECT().SetVerbose(false)
				h.tracer.EXPECT().Shutdown(gomock.Any()).Return(nil)
			},
			plan:    domain.ErrCompilerError,
			wantErr: domain.ErrCompilerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			tt.setup(h)
			engine := &fakeEngine{plan: func(_ context.Context, req planner.Request) (*domain.BuildReport, error) {
				if tt.plan != nil {
					return nil, tt.plan
				}
				return upToDate(req), nil
			}}

			err := h.app(engine).Build(t.Context(), tt.opts)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, h.out.String())
		})
	}
}

func TestApp_Explain_ResolvesRelativeFile(t *testing.T) {
	h := newHarness(t)
	t.Chdir(t.TempDir())
	cwd, err := os.Getwd()
	require.NoError(t, err)

	h.logger.EXPECT().SetVerbose(false)
	h.tracer.EXPECT().Shutdown(gomock.Any()).Return(nil)

	engine := &fakeEngine{explain: func(_ context.Context, req planner.Request, file string) (*domain.Explanation, error) {
		assert.Equal(t, filepath.Join(cwd, "src", "a.cpp"), file)
		return &domain.Explanation{
			Reason: domain.RebuildReason{
				Source: file,
				Object: filepath.Join(req.Root, "build", "obj", "debug", "src", "a.o"),
				Cause:  domain.CauseUpToDate,
			},
			Dependencies: []string{file},
		}, nil
	}}

	require.NoError(t, h.app(engine).Explain(t.Context(), app.Options{Target: "debug"}, filepath.Join("src", "a.cpp")))
	assert.Contains(t, h.out.String(), "up to date")
}

func TestApp_Libraries(t *testing.T) {
	h := newHarness(t)
	h.logger.EXPECT().SetVerbose(false)
	h.tracer.EXPECT().Shutdown(gomock.Any()).Return(nil)

	zlib, err := domain.NewLibrary("zlib", domain.LinkageStatic, domain.WithBinaries("z", "z"), domain.WithHeaders("zlib.h"))
	require.NoError(t, err)
	engine := &fakeEngine{libraries: func(context.Context, planner.Request) ([]*domain.Library, error) {
		return []*domain.Library{zlib}, nil
	}}

	require.NoError(t, h.app(engine).Libraries(t.Context(), app.Options{Root: t.TempDir(), Target: "debug"}))
	assert.Contains(t, h.out.String(), "zlib")
	assert.Contains(t, h.out.String(), "zlib.h")
}

func TestApp_Watch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		events := make(chan ports.WatchEvent, 8)
		events <- ports.WatchEvent{Path: "/work/app/src/a.cpp", Operation: ports.OpWrite}
		events <- ports.WatchEvent{Path: "/work/app/build/obj/debug/src/a.o", Operation: ports.OpCreate}

		h.logger.EXPECT().SetVerbose(false)
		h.logger.EXPECT().Info(gomock.Any()).AnyTimes()
		h.logger.EXPECT().Debug("changed: /work/app/src/a.cpp")
		h.logger.EXPECT().Debug("changed: /work/app/include/a.h")
		h.logger.EXPECT().Error(gomock.Any())
		h.tracer.EXPECT().Shutdown(gomock.Any()).Return(nil)
		h.times.EXPECT().Invalidate().Times(2)

		h.watcher.EXPECT().Start(gomock.Any(),
			"/home/u/.ice/libraries.hcl",
			"/home/u/.icompile",
			"/work/app",
			"/work/mylib.lib",
			"/work/mylib.lib/include",
		).Return(nil)
		h.watcher.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
			for e := range events {
				if !yield(e) {
					return
				}
			}
		}))
		h.watcher.EXPECT().Stop().DoAndReturn(func() error {
			close(events)
			return nil
		})

		plans := 0
		engine := &fakeEngine{plan: func(_ context.Context, req planner.Request) (*domain.BuildReport, error) {
			plans++
			switch plans {
			case 2:
				events <- ports.WatchEvent{Path: "/work/app/include/a.h", Operation: ports.OpWrite}
				return nil, domain.ErrCompilerError
			case 3:
				cancel()
			}
			report := upToDate(req)
			report.Projects = []string{"/work/mylib.lib"}
			report.Settings.IncludePaths = []string{"/work/mylib.lib/include"}
			return report, nil
		}}

		a := h.app(engine).
			WithDebounceWindow(50 * time.Millisecond).
			WithHome(func() (string, error) { return "/home/u", nil })

		require.NoError(t, a.Watch(ctx, app.Options{Root: "/work/app", Target: "debug"}))
		assert.Equal(t, 3, plans)
	})
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/p/src/a.cpp", true},
		{"/p/src/a.C", true},
		{"/p/include/a.hpp", true},
		{"/p/include/a.inl", true},
		{"/p/ice.yaml", true},
		{"/home/u/.icompile", true},
		{"/home/u/.ice/libraries.hcl", true},
		{"/p/build/obj/debug/a.o", false},
		{"/p/README.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, app.Relevant(tt.path))
		})
	}
}
