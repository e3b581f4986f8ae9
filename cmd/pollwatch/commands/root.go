// Package commands implements the CLI commands for pollwatch.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pollwatch/internal/app"
	"go.trai.ch/pollwatch/internal/build"
	"go.trai.ch/pollwatch/internal/core/domain"
)

// CLI represents the command line interface for pollwatch.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Watch(ctx context.Context, opts app.RunOptions) error
	Snapshot(ctx context.Context, opts app.RunOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pollwatch",
		Short:         "Watch a directory tree by polling",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	// Persistent flags go first so -v stays with --verbose and --version
	// is registered without a shorthand.
	rootCmd.PersistentFlags().StringP("config", "c", domain.DefaultConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log round timings and other debug output")
	rootCmd.PersistentFlags().Bool("json", false, "Write events and logs as JSON lines")

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newSnapshotCmd())
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

// addTargetFlags registers the flags shared by watch and snapshot.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("root", "r", "", "Directory to watch (overrides the config file)")
	cmd.Flags().StringP("backend", "b", "", "Enumerator backend: walk or find")
	cmd.Flags().Bool("no-prune", false, "Descend into excluded directories")
}

// runOptions collects the flags of cmd. A positional argument names the root.
func runOptions(cmd *cobra.Command, args []string) app.RunOptions {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonMode, _ := cmd.Flags().GetBool("json")
	root, _ := cmd.Flags().GetString("root")
	backend, _ := cmd.Flags().GetString("backend")
	noPrune, _ := cmd.Flags().GetBool("no-prune")

	if root == "" && len(args) > 0 {
		root = args[0]
	}

	return app.RunOptions{
		ConfigPath:     configPath,
		ConfigExplicit: cmd.Flags().Changed("config"),
		Root:           root,
		Backend:        backend,
		NoPrune:        noPrune,
		Verbose:        verbose,
		JSON:           jsonMode,
	}
}
