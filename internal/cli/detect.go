package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/stylx/stylx/internal/config"
	"github.com/stylx/stylx/internal/genai"
	"github.com/stylx/stylx/internal/store"
	"github.com/stylx/stylx/internal/trend"
)

var (
	detectStrategy  string
	detectDays      int
	detectMinVideos int
	detectMinViews  int64
	detectMaxViews  int64
)

// detectNow supplies the reference time for scoring and the detected_at
// stamp; tests substitute a fixed clock.
var detectNow = time.Now

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Compute emerging trends from stored videos",
	Long: "detect runs the trend pipeline over every stored video: keyword extraction,\n" +
		"name normalization, aggregation, time-decayed scoring, and threshold filtering.\n" +
		"The trends table is replaced wholesale with this run's results.",
}

func init() {
	detectCmd.RunE = detectAction
	detectCmd.Flags().StringVar(&detectStrategy, "strategy", "", "extraction strategy: lexical or gemini (overrides config)")
	detectCmd.Flags().IntVar(&detectDays, "days", 0, "days window for the emerging filter (overrides config)")
	detectCmd.Flags().IntVar(&detectMinVideos, "min-videos", 0, "minimum videos mentioning a trend (overrides config)")
	detectCmd.Flags().Int64Var(&detectMinViews, "min-views", 0, "minimum total views (overrides config)")
	detectCmd.Flags().Int64Var(&detectMaxViews, "max-views", 0, "maximum total views (overrides config)")
	rootCmd.AddCommand(detectCmd)
}

func detectAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	strategy := cfg.Trends.Strategy
	if detectStrategy != "" {
		strategy = detectStrategy
	}

	th := trend.Thresholds{
		DaysWindow: cfg.Trends.DaysWindow,
		MinVideos:  cfg.Trends.MinVideos,
		MinViews:   cfg.Trends.MinViews,
		MaxViews:   cfg.Trends.MaxViews,
	}
	// Changed distinguishes an explicit zero from an unset flag, so
	// thresholds can be lowered all the way down on the command line.
	flags := detectCmd.Flags()
	if flags.Changed("days") {
		th.DaysWindow = detectDays
	}
	if flags.Changed("min-videos") {
		th.MinVideos = detectMinVideos
	}
	if flags.Changed("min-views") {
		th.MinViews = detectMinViews
	}
	if flags.Changed("max-views") {
		th.MaxViews = detectMaxViews
	}
	if err := th.Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}

	var ex trend.Extractor
	switch strategy {
	case "lexical":
		ex = trend.NewLexical(nil)
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return fmt.Errorf("gemini api key missing: set %s in the environment or .env", cfg.Gemini.APIKeyEnv)
		}
		gem, err := genai.NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature, cfg.Gemini.MaxOutputTokens)
		if err != nil {
			return fmt.Errorf("create gemini client: %w", err)
		}
		ex = trend.NewGenerative(gem)
	default:
		return fmt.Errorf("unknown strategy %q (want lexical or gemini)", strategy)
	}

	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx := cmd.Context()

	videos, err := db.ListVideos(ctx)
	if err != nil {
		return fmt.Errorf("list videos: %w", err)
	}
	if len(videos) == 0 {
		fmt.Println("No videos in database. Run 'stylx fetch' first.")
		return nil
	}

	fmt.Printf("Extracting keywords from %d videos (%s strategy)...\n", len(videos), ex.Name())
	occs := trend.Occurrences(ctx, videos, ex)
	fmt.Printf("Extracted %d trend mentions\n", len(occs))

	now := detectNow().UTC()
	emerging := trend.Detect(occs, now, th)

	rows := make([]store.Trend, 0, len(emerging))
	for _, m := range emerging {
		rows = append(rows, store.Trend{
			Name:        m.Name,
			Score:       m.Score,
			NumVideos:   m.NumVideos,
			TotalViews:  m.TotalViews,
			AvgViews:    m.AvgViews,
			FirstSeenAt: m.FirstSeenAt,
			LastSeenAt:  m.LastSeenAt,
		})
	}

	if err := db.ReplaceTrends(ctx, rows, now); err != nil {
		return fmt.Errorf("save trends: %w", err)
	}

	fmt.Printf("Saved %d emerging trends to %s\n", len(emerging), cfg.Storage.Path)

	if len(emerging) > 0 {
		fmt.Println("\nTop emerging trends:")
		top := emerging
		if len(top) > 5 {
			top = top[:5]
		}
		for i, m := range top {
			fmt.Printf("  %d. %s\n", i+1, m.Name)
			fmt.Printf("     Score: %.2f | Videos: %d | Views: %d\n", m.Score, m.NumVideos, m.TotalViews)
			fmt.Printf("     First seen: %.10s | Days ago: %.1f\n", m.FirstSeenAt, m.DaysSince)
		}
	}

	return nil
}
