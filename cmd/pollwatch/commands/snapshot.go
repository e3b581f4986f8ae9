package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot [root]",
		Short: "List the watched paths once and print their fingerprint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Snapshot(cmd.Context(), runOptions(cmd, args))
		},
	}
	addTargetFlags(cmd)
	return cmd
}
