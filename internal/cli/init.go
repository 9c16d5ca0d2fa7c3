package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/stylx/stylx/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create config directory with an example config file",
	RunE:  initAction,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func initAction(_ *cobra.Command, _ []string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	configPath := filepath.Join(configDir, config.DefaultConfigFile)
	wrote, err := writeIfNotExists(configPath, []byte(exampleConfig))
	if err != nil {
		return err
	}

	if !wrote {
		fmt.Printf("Config directory %s already initialized.\n", configDir)
	} else {
		fmt.Printf("Initialized %s.\n", configDir)
	}
	return nil
}

// writeIfNotExists writes data to path if the file does not exist.
// Returns true if the file was created.
func writeIfNotExists(path string, data []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("  exists: %s\n", path)
		return false, nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("  created: %s\n", path)
	return true, nil
}

const exampleConfig = `# stylx configuration

storage:
  path: .stylx/stylx.db

youtube:
  api_key_env: YOUTUBE_API_KEY
  region: ""          # ISO 3166-1 alpha-2, e.g. "RO"
  language: ""        # relevance language, e.g. "ro"
  max_per_query: 20
  queries:
    - "fashion haul"
    - "streetwear 2026"

gemini:
  api_key_env: GOOGLE_API_KEY
  model: gemini-2.0-flash
  temperature: 0.3
  max_output_tokens: 500

trends:
  strategy: lexical   # lexical or gemini
  # days_window defaults to 10 for lexical, 7 for gemini
  min_videos: 3
  min_views: 10000
  max_views: 500000

newsletter:
  output: Newsletter.md
  model: gemini-2.5-flash
`
