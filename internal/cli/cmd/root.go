// Package cmd provides Cobra CLI commands for rove.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/rove/internal/cli"
)

var (
	app     *cli.App
	rootCmd = &cobra.Command{
		Use:   "rove",
		Short: "Declarative focus-group navigation for element trees",
		Long: `Rove - roving focus management driven by a declarative group attribute.

Mark a container with a focusgroup attribute (behavior plus modifiers such
as wrap, inline, block, row-flow or shadow-inclusive) and rove keeps exactly
one of its items sequentially reachable, drives arrow-key navigation between
them, infers grid rows from layout, and remembers the last-used item per
group.

Use 'rove play' for an interactive playground over an HTML file, or
'rove inspect' to dump the groups a document declares.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
