// Package cli provides the command-line interface for stylx.
package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "stylx",
	Short: "Detect emerging fashion trends from YouTube metadata",
	Long: "stylx pulls video metadata from the YouTube Data API into a local SQLite store,\n" +
		"scores recurring trend keywords with a time-decayed emergence formula, and renders\n" +
		"the results as reports or a generated newsletter.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// API keys may live in a local .env file, as with the config's
		// *_env indirection. Absence is fine.
		_ = godotenv.Load()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("stylx %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".stylx", "config directory")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
