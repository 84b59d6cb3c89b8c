// Package shell provides the external tool runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/RomkoSI/ice/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ToolRunner = (*Runner)(nil)

// toolEnvironment is applied on top of the process environment so that
// diagnostics are printed untranslated.
var toolEnvironment = map[string]string{
	"LC_ALL": "C",
	"LANG":   "C",
}

// Runner implements ports.ToolRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes name with args in dir and returns its combined output.
// A non-zero exit is reported through ToolResult.ExitCode.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) (ports.ToolResult, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // compiler and helper tools are configured by the user
	cmd.Dir = dir
	cmd.Env = resolveEnvironment(os.Environ(), toolEnvironment)

	// A single writer keeps stdout and stderr interleaved as the tool wrote them.
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	r.logger.Debug("run: " + strings.Join(slices.Concat([]string{name}, args), " "))

	err := cmd.Run()
	result := ports.ToolResult{Output: out.String()}
	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	return result, zerr.With(zerr.Wrap(err, "failed to start "+name), "dir", dir)
}

// resolveEnvironment merges overrides into the system environment.
// The result is sorted so that runs are reproducible.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}
