package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stylx/stylx/internal/config"
	"github.com/stylx/stylx/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, database, and API keys",
	RunE:  doctorAction,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func doctorAction(cmd *cobra.Command, _ []string) error {
	ok := true

	if info, err := os.Stat(configDir); err != nil || !info.IsDir() {
		printCheck(false, "config directory %s", configDir)
		ok = false
	} else {
		printCheck(true, "config directory %s", configDir)
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		printCheck(false, "config.yaml: %v", err)
		fmt.Println("\nRun 'stylx init' to create a starter configuration.")
		return fmt.Errorf("doctor found problems")
	}
	printCheck(true, "config.yaml (%d queries, strategy %s)", len(cfg.YouTube.Queries), cfg.Trends.Strategy)

	if cfg.YouTube.APIKey == "" {
		printCheck(false, "youtube api key (%s not set)", cfg.YouTube.APIKeyEnv)
		ok = false
	} else {
		printCheck(true, "youtube api key (%s)", cfg.YouTube.APIKeyEnv)
	}

	if cfg.Gemini.APIKey == "" {
		printCheck(false, "gemini api key (%s not set; lexical strategy still works)", cfg.Gemini.APIKeyEnv)
	} else {
		printCheck(true, "gemini api key (%s)", cfg.Gemini.APIKeyEnv)
	}

	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		printCheck(false, "database %s: %v", cfg.Storage.Path, err)
		ok = false
	} else {
		defer func() { _ = db.Close() }()
		ctx := cmd.Context()

		videos, err := db.CountVideos(ctx)
		if err != nil {
			printCheck(false, "database %s: %v", cfg.Storage.Path, err)
			ok = false
		} else {
			trends, _ := db.ListTrends(ctx, 0)
			printCheck(true, "database %s (%d videos, %d trends)", cfg.Storage.Path, videos, len(trends))
		}
	}

	if !ok {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Println("\nAll checks passed.")
	return nil
}

func printCheck(ok bool, format string, args ...any) {
	mark := "✓"
	if !ok {
		mark = "✗"
	}
	fmt.Printf("  %s %s\n", mark, fmt.Sprintf(format, args...))
}
