package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/stylx/stylx/internal/config"
	"github.com/stylx/stylx/internal/genai"
	"github.com/stylx/stylx/internal/newsletter"
	"github.com/stylx/stylx/internal/report"
	"github.com/stylx/stylx/internal/store"
)

var newsletterOutput string

var newsletterCmd = &cobra.Command{
	Use:   "newsletter",
	Short: "Generate the STYLX Fashion Pulse newsletter from detected trends",
	RunE:  newsletterAction,
}

func init() {
	newsletterCmd.Flags().StringVar(&newsletterOutput, "output", "", "output file (overrides config)")
	rootCmd.AddCommand(newsletterCmd)
}

func newsletterAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.Gemini.APIKey == "" {
		return fmt.Errorf("gemini api key missing: set %s in the environment or .env", cfg.Gemini.APIKeyEnv)
	}

	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = db.Close() }()

	trends, err := db.ListTrends(cmd.Context(), 0)
	if err != nil {
		return fmt.Errorf("list trends: %w", err)
	}
	if len(trends) == 0 {
		fmt.Println("No emerging trends found. Run 'stylx detect' first.")
		return nil
	}

	var stats bytes.Buffer
	if err := report.NewMarkdown().Format(&stats, trends); err != nil {
		return fmt.Errorf("render stats table: %w", err)
	}

	// The newsletter needs a longer output budget than keyword extraction,
	// so the extraction token cap is not applied here.
	gem, err := genai.NewGemini(cfg.Gemini.APIKey, cfg.Newsletter.Model, cfg.Gemini.Temperature, 0)
	if err != nil {
		return fmt.Errorf("create gemini client: %w", err)
	}

	fmt.Print("Generating newsletter via Gemini... ")
	body, err := newsletter.Compose(cmd.Context(), gem, stats.String(), time.Now())
	if err != nil {
		fmt.Println("FAILED")
		return err
	}
	fmt.Println("DONE")

	output := cfg.Newsletter.Output
	if newsletterOutput != "" {
		output = newsletterOutput
	}
	if err := os.WriteFile(output, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write newsletter: %w", err)
	}

	fmt.Printf("Newsletter written to %s\n", output)
	return nil
}
