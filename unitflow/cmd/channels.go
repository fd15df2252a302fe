package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sarchlab/unitflow/hal"
)

func newChannelsCmd() *cobra.Command {
	channelsCmd := &cobra.Command{
		Use:   "channels",
		Short: "List the channel kinds or validate a channel file.",
		Long: "`channels` lists the channel kinds. " +
			"`channels --file [path]` validates a channel file and prints " +
			"its channels.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("file")
			if path == "" {
				printKinds(cmd.OutOrStdout())
				return nil
			}

			channels, err := hal.LoadChannels(path)
			if err != nil {
				return fmt.Errorf("invalid channel file %s: %w", path, err)
			}

			printChannels(cmd.OutOrStdout(), channels)

			return nil
		},
	}

	channelsCmd.Flags().String("file", "", "The channel file to validate")

	return channelsCmd
}

func printKinds(w io.Writer) {
	fmt.Fprintf(w, "%-10s%-4s%s\n", "KIND", "DIR", "TYPE")

	for _, kind := range hal.Kinds() {
		k, _ := hal.DescribeKind(kind)
		fmt.Fprintf(w, "%-10s%-4s%s\n", k.Name, k.Direction, k.Type)
	}
}

func printChannels(w io.Writer, channels []hal.Channel) {
	for _, c := range channels {
		fmt.Fprintf(w, "%s: %s %s %s [%s] scale=%g offset=%g range=[%g, %g]\n",
			c.ID, c.Name, c.Direction, c.Type, c.Unit,
			c.Scale, c.Offset, c.MinIn, c.MaxIn)
	}
}
