// Package cmd provides the command-line interface for unitflow.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/unitflow/config"
)

// NewRootCmd creates the base command with all its child commands.
func NewRootCmd(cfg config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "unitflow",
		Short: "unitflow CLI tool inspects units and hardware channels.",
		Long: `unitflow CLI tool inspects the units and the hardware channel ` +
			`kinds known to unitflow, validates channel files, and runs a ` +
			`demo block diagram.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newUnitsCmd())
	rootCmd.AddCommand(newChannelsCmd())
	rootCmd.AddCommand(newDemoCmd(cfg))

	return rootCmd
}

// Execute runs the root command and returns the exit code of the program.
func Execute(cfg config.Config) int {
	err := NewRootCmd(cfg).Execute()
	if err != nil {
		return 1
	}

	return 0
}
