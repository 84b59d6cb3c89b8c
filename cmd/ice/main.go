// Package main is the entry point for the ice build planner.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/RomkoSI/ice/cmd/ice/commands"
	"github.com/RomkoSI/ice/internal/app"
	"github.com/RomkoSI/ice/internal/core/domain"
	_ "github.com/RomkoSI/ice/internal/wiring"
	"github.com/grindlemire/graft"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

// exitCodes maps failure classes to process exit codes. Anything else exits with 1.
var exitCodes = []struct {
	err  error
	code int
}{
	{domain.ErrCompilerError, 2},
	{domain.ErrRetryBoundExceeded, 3},
	{domain.ErrCycleDetected, 4},
	{domain.ErrDuplicateLibrary, 5},
	{domain.ErrHomeNotSet, 6},
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// The logger is not available when initialization fails.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitCode(err)
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}
	components.App.WithOutput(stdout)
	components.Logger.SetOutput(stderr)

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	for _, e := range exitCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return 1
}
