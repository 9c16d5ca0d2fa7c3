package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stylx/stylx/internal/config"
	"github.com/stylx/stylx/internal/report"
	"github.com/stylx/stylx/internal/store"
	"github.com/stylx/stylx/internal/trend"
)

var (
	trendsTop    int
	trendsFormat string
	trendsName   string
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show detected emerging trends",
	RunE:  trendsAction,
}

func init() {
	trendsCmd.Flags().IntVar(&trendsTop, "top", 20, "number of top trends to display")
	trendsCmd.Flags().StringVar(&trendsFormat, "format", "", "output format: markdown, json")
	trendsCmd.Flags().StringVar(&trendsName, "name", "", "show details for one trend")
	rootCmd.AddCommand(trendsCmd)
}

func trendsAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx := cmd.Context()

	if trendsName != "" {
		t, err := db.GetTrend(ctx, trend.Normalize(trendsName))
		if errors.Is(err, store.ErrTrendNotFound) {
			fmt.Printf("Trend %q not found in database.\n", trendsName)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get trend: %w", err)
		}
		report.DetailMarkdown(os.Stdout, t)
		return nil
	}

	trends, err := db.ListTrends(ctx, trendsTop)
	if err != nil {
		return fmt.Errorf("list trends: %w", err)
	}
	if len(trends) == 0 {
		fmt.Println("No emerging trends found. Run 'stylx detect' first.")
		return nil
	}

	var formatter report.Formatter
	switch trendsFormat {
	case "json":
		formatter = report.NewJSON()
	case "markdown", "md", "":
		formatter = report.NewMarkdown()
	default:
		return fmt.Errorf("unknown format %q (want markdown or json)", trendsFormat)
	}
	return formatter.Format(os.Stdout, trends)
}
