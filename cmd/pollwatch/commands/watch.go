package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Poll a directory and print change events",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runOptions(cmd, args)
			opts.Period, _ = cmd.Flags().GetDuration("period")
			opts.Strategy, _ = cmd.Flags().GetString("strategy")
			opts.Notify, _ = cmd.Flags().GetBool("fsnotify")
			return c.app.Watch(cmd.Context(), opts)
		},
	}
	addTargetFlags(cmd)
	cmd.Flags().DurationP("period", "p", 0, "Poll period, for example 500ms or 2s (default 1s)")
	cmd.Flags().StringP("strategy", "s", "", "Full-tree strategy: paired or separate")
	cmd.Flags().Bool("fsnotify", false, "Print CREATE, WRITE and REMOVE operations with absolute names")
	return cmd
}
