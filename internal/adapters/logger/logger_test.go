package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/RomkoSI/ice/internal/adapters/logger"
	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to a buffer with colors disabled.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		verbose    bool
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("resolving 3 sources") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("Header not found: 'foo.h'.") },
			goldenName: "warn_basic",
		},
		{
			name:       "multiline info",
			log:        func(l *logger.Logger) { l.Info("line1\nline2") },
			goldenName: "info_multiline",
		},
		{
			name:       "debug in verbose mode",
			verbose:    true,
			log:        func(l *logger.Logger) { l.Debug("scanning a.cpp") },
			goldenName: "debug_verbose",
		},
		{
			name: "with attribute",
			log: func(l *logger.Logger) {
				l.With("invocation", "0b6a").Info("build set computed")
			},
			goldenName: "info_with_attr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.SetVerbose(tt.verbose)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_DebugFilteredByDefault(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	lg.SetVerbose(true)
	lg.SetVerbose(false)
	lg.Debug("hidden again")
	assert.Empty(t, buf.String())
}

func TestLogger_ChildFollowsVerbosity(t *testing.T) {
	lg, buf := newTestLogger(t)
	child := lg.With("file", "a.cpp")

	child.Debug("hidden")
	assert.Empty(t, buf.String())

	lg.SetVerbose(true)
	child.Debug("visible")
	assert.Contains(t, buf.String(), "visible file=a.cpp")
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "standard error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name: "cycle with metadata",
			err: zerr.With(
				zerr.Wrap(domain.ErrCycleDetected, "libraries depend on each other: A -> B -> A"),
				"cycle", "A -> B -> A",
			),
			goldenName: "error_cycle",
		},
		{
			name: "compiler diagnostic",
			err: zerr.Wrap(
				zerr.Wrap(domain.ErrCompilerError, "main.cpp:3:10: error: expected ';'\n    int x\n         ^"),
				"failed to resolve dependencies of main.cpp",
			),
			goldenName: "error_compiler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	require.NoError(t, lg.SetFormat(logger.FormatJSON))

	lg.With("target", "debug").Error(zerr.Wrap(errors.New("disk full"), "failed to write dependency cache"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "operation failed", line["msg"])
	assert.Equal(t, "debug", line["target"])
	assert.Contains(t, line["error"], "disk full")
}

func TestLogger_Logfmt(t *testing.T) {
	lg, buf := newTestLogger(t)
	require.NoError(t, lg.SetFormat(logger.FormatLogfmt))

	lg.Info("resolving sources")
	lg.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, `msg="resolving sources"`)
	assert.NotContains(t, out, "hidden")
}

func TestLogger_SetFormatUnknown(t *testing.T) {
	lg, _ := newTestLogger(t)
	err := lg.SetFormat("xml")
	require.ErrorIs(t, err, logger.ErrUnknownFormat)
}
