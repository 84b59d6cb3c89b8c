// Package commands implements the CLI commands for ice.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/RomkoSI/ice/internal/app"
	"github.com/RomkoSI/ice/internal/build"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for ice.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	opts    app.Options
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.Options) error
	Explain(ctx context.Context, opts app.Options, file string) error
	Libraries(ctx context.Context, opts app.Options) error
	Watch(ctx context.Context, opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "ice",
		Short:         "Incremental build planner for C and C++ projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	// Registered without a shorthand so that -v stays free for --verbose.
	rootCmd.Flags().Bool("version", false, "Print the application version")

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.opts.Target, "target", "t", "debug", "Build target: debug or release")
	flags.StringVar(&c.opts.Root, "root", "", "Project directory (defaults to the working directory)")
	flags.BoolVarP(&c.opts.Verbose, "verbose", "v", false, "Show debug output")
	flags.StringVar(&c.opts.LogFormat, "log-format", "pretty", "Log format: pretty, json or logfmt")

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newExplainCmd())
	rootCmd.AddCommand(c.newLibrariesCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
