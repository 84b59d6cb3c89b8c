package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <source>",
		Short: "Show why a source would be recompiled and what it includes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Explain(cmd.Context(), c.opts, args[0])
		},
	}
}
