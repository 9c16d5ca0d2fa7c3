package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := writeConfig(t, "")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Storage.Path != DefaultStoragePath {
		t.Errorf("storage.path = %q", cfg.Storage.Path)
	}
	if cfg.YouTube.MaxPerQuery != DefaultMaxPerQuery {
		t.Errorf("max_per_query = %d", cfg.YouTube.MaxPerQuery)
	}
	if cfg.Gemini.Model != DefaultModel {
		t.Errorf("gemini.model = %q", cfg.Gemini.Model)
	}
	if cfg.Trends.Strategy != "lexical" {
		t.Errorf("strategy = %q", cfg.Trends.Strategy)
	}
	if cfg.Trends.MinVideos != DefaultMinVideos || cfg.Trends.MinViews != DefaultMinViews || cfg.Trends.MaxViews != DefaultMaxViews {
		t.Errorf("thresholds = %+v", cfg.Trends)
	}
	if cfg.Newsletter.Output != DefaultOutput {
		t.Errorf("newsletter.output = %q", cfg.Newsletter.Output)
	}
	if cfg.Newsletter.Model != DefaultModel {
		t.Errorf("newsletter.model = %q, want the gemini model", cfg.Newsletter.Model)
	}
}

func TestLoad_DaysWindowFollowsStrategy(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want int
	}{
		{"lexical default", "trends:\n  strategy: lexical\n", DefaultDaysWindowLexical},
		{"gemini default", "trends:\n  strategy: gemini\n", DefaultDaysWindowGemini},
		{"explicit wins", "trends:\n  strategy: gemini\n  days_window: 14\n", 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.yaml))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if cfg.Trends.DaysWindow != tt.want {
				t.Errorf("days_window = %d, want %d", cfg.Trends.DaysWindow, tt.want)
			}
		})
	}
}

func TestLoad_ResolvesAPIKeysFromEnv(t *testing.T) {
	dir := writeConfig(t, `
youtube:
  api_key_env: TEST_YT_KEY
gemini:
  api_key_env: TEST_GEMINI_KEY
`)
	t.Setenv("TEST_YT_KEY", "yt-secret")
	t.Setenv("TEST_GEMINI_KEY", "gm-secret")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.YouTube.APIKey != "yt-secret" {
		t.Errorf("youtube key = %q", cfg.YouTube.APIKey)
	}
	if cfg.Gemini.APIKey != "gm-secret" {
		t.Errorf("gemini key = %q", cfg.Gemini.APIKey)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"unknown strategy", "trends:\n  strategy: astrology\n", "unknown strategy"},
		{"min above max", "trends:\n  min_views: 600000\n  max_views: 500000\n", "exceeds trends.max_views"},
		{"negative min_views", "trends:\n  min_views: -5\n", "must not be negative"},
		{"negative max_per_query", "youtube:\n  max_per_query: -1\n", "max_per_query"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("error = %v, want read failure", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "trends: [not a map"))
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("error = %v, want parse failure", err)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	dir := writeConfig(t, `
storage:
  path: /tmp/custom/stylx.db
youtube:
  region: RO
  language: ro
  max_per_query: 30
  queries:
    - fashion haul 2026
    - streetwear România
gemini:
  model: gemini-2.0-pro
  temperature: 0.9
  max_output_tokens: 2000
trends:
  strategy: gemini
  min_videos: 5
  min_views: 20000
  max_views: 900000
newsletter:
  output: Pulse.md
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Path != "/tmp/custom/stylx.db" {
		t.Errorf("storage.path = %q", cfg.Storage.Path)
	}
	if len(cfg.YouTube.Queries) != 2 || cfg.YouTube.Queries[1] != "streetwear România" {
		t.Errorf("queries = %v", cfg.YouTube.Queries)
	}
	if cfg.Gemini.Temperature != 0.9 || cfg.Gemini.MaxOutputTokens != 2000 {
		t.Errorf("gemini = %+v", cfg.Gemini)
	}
	if cfg.Trends.MinVideos != 5 || cfg.Trends.MaxViews != 900000 {
		t.Errorf("trends = %+v", cfg.Trends)
	}
	if cfg.Newsletter.Model != "gemini-2.0-pro" {
		t.Errorf("newsletter.model = %q, want fallback to gemini model", cfg.Newsletter.Model)
	}
	if cfg.Newsletter.Output != "Pulse.md" {
		t.Errorf("newsletter.output = %q", cfg.Newsletter.Output)
	}
}
