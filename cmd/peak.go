package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DRNaser/shift-optimizer-sub007/core/blocks"
)

var peakCmd = &cobra.Command{
	Use:   "peak <tours.json>",
	Short: "Print the peak number of concurrently running tours",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tours, err := readTours(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), blocks.PeakFleet(tours))
		return nil
	},
}
