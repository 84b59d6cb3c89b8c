package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newLibrariesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "libraries",
		Aliases: []string{"libs"},
		Short:   "List the libraries known to the project",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Libraries(cmd.Context(), c.opts)
		},
	}
}
