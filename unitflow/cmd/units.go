package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/unitflow/hal"
)

func newUnitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List the unit symbols that channel files may use.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%-7s%s\n", "SYMBOL", "UNIT")
			for _, symbol := range hal.Symbols() {
				u, _ := hal.UnitOf(symbol)
				fmt.Fprintf(out, "%-7s%s\n", symbol, u)
			}
		},
	}
}
