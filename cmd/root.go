// Package cmd implements the CLI entrypoints of the optimizer.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "rosterd",
	Short: "Weekly roster set-partitioning optimizer",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	rootCmd.AddCommand(solveCmd, peakCmd)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
