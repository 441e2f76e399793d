package root

import (
	"github.com/spf13/cobra"
)

// rootCmd is the base command for the AumOS testbed CLI. Subcommands
// (bootstrap, seed) are attached here.
var rootCmd = &cobra.Command{
	Use:           "aumos-testbed",
	Short:         "AumOS integration testbed CLI",
	Long:          "Utilities for the AumOS integration testbed (baseline schema bootstrap, idempotent test-data seeding).",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// Root returns the mutable root command for wiring from subpackages.
func Root() *cobra.Command {
	return rootCmd
}
