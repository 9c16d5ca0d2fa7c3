package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/stylx/stylx/internal/config"
	"github.com/stylx/stylx/internal/store"
	"github.com/stylx/stylx/internal/youtube"
)

var (
	fetchQueries []string
	fetchMax     int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Search YouTube and store video metadata",
	RunE:  fetchAction,
}

func init() {
	fetchCmd.Flags().StringArrayVar(&fetchQueries, "query", nil, "search query (repeatable; overrides config)")
	fetchCmd.Flags().IntVar(&fetchMax, "max", 0, "max videos per query (overrides config)")
	rootCmd.AddCommand(fetchCmd)
}

func fetchAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	queries := cfg.YouTube.Queries
	if len(fetchQueries) > 0 {
		queries = fetchQueries
	}
	if len(queries) == 0 {
		return fmt.Errorf("no search queries: set youtube.queries in config or pass --query")
	}

	if cfg.YouTube.APIKey == "" {
		return fmt.Errorf("youtube api key missing: set %s in the environment or .env", cfg.YouTube.APIKeyEnv)
	}

	maxPerQuery := cfg.YouTube.MaxPerQuery
	if fetchMax > 0 {
		maxPerQuery = fetchMax
	}

	yt, err := youtube.New(cfg.YouTube.APIKey, cfg.YouTube.Region, cfg.YouTube.Language)
	if err != nil {
		return fmt.Errorf("create youtube client: %w", err)
	}

	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx := cmd.Context()
	total := 0

	for _, q := range queries {
		fmt.Printf("Searching query: %s\n", q)

		ids, err := yt.Search(ctx, q, maxPerQuery)
		if err != nil {
			fmt.Printf("warning: search %q: %v\n", q, err)
			continue
		}
		fmt.Printf("  found %d video ids\n", len(ids))

		details, err := yt.Details(ctx, ids)
		if err != nil {
			fmt.Printf("warning: details for %q: %v\n", q, err)
			continue
		}

		now := time.Now()
		for _, v := range details {
			tags := v.Tags
			if tags == nil {
				tags = []string{}
			}
			tagsJSON, err := json.Marshal(tags)
			if err != nil {
				return fmt.Errorf("encode tags: %w", err)
			}

			err = db.UpsertVideo(ctx, store.Video{
				VideoID:     v.VideoID,
				Title:       v.Title,
				Description: v.Description,
				Channel:     v.Channel,
				URL:         v.URL,
				PublishDate: v.PublishedAt,
				ViewCount:   v.ViewCount,
				LikeCount:   v.LikeCount,
				Tags:        string(tagsJSON),
				InsertedAt:  now,
			})
			if err != nil {
				return fmt.Errorf("upsert video: %w", err)
			}
			total++
		}
	}

	fmt.Printf("Stored/updated %d videos in %s\n", total, cfg.Storage.Path)
	return nil
}
