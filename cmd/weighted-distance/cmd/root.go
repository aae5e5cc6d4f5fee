// Package cmd provides the CLI commands for weighted-distance.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "0.1.0"

var (
	cfgFile string
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "weighted-distance",
	Short: "Population-weighted average travel distance from LGAs to a destination",
	Long: `weighted-distance loads Local Government Area population and location data,
queries a distance-matrix service for the driving distance from every LGA to a
fixed destination, and writes a per-LGA detail table plus the population-weighted
average distance.

Examples:
  weighted-distance run
  weighted-distance run --config config.ini --state "New South Wales"
  weighted-distance run --provider ors --batch-size 50`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "INI config file (default is ./config.ini when present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "weighted-distance version %s\n", Version)
	},
}
