package main

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "occurrence-clean",
	Short:   "clean crabeater seal occurrence records",
	Version: version,
	Long: `Filters raw species-occurrence downloads from GBIF and the SCAR
biodiversity portal, applying geographic, temporal, and quality rules plus
coordinate validation, and writes a cleaned CSV per source.`,
}

// Execute runs the root command. Errors are logged by the subcommands, so the
// caller only needs the exit status.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(gbifCmd)
	rootCmd.AddCommand(scarCmd)
}
