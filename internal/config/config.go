// Package config loads and validates the stylx configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile  = "config.yaml"
	DefaultStoragePath = ".stylx/stylx.db"
	DefaultMaxPerQuery = 20
	DefaultModel       = "gemini-2.0-flash"
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 500
	DefaultStrategy    = "lexical"
	DefaultOutput      = "Newsletter.md"

	// Emerging-filter defaults. The lexical strategy historically ran with a
	// wider 10-day window; the generative one with 7.
	DefaultMinVideos         = 3
	DefaultMinViews          = 10000
	DefaultMaxViews          = 500000
	DefaultDaysWindowLexical = 10
	DefaultDaysWindowGemini  = 7
)

type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	YouTube    YouTubeConfig    `yaml:"youtube"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Trends     TrendsConfig     `yaml:"trends"`
	Newsletter NewsletterConfig `yaml:"newsletter"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type YouTubeConfig struct {
	APIKeyEnv   string   `yaml:"api_key_env"`
	Region      string   `yaml:"region"`
	Language    string   `yaml:"language"`
	MaxPerQuery int      `yaml:"max_per_query"`
	Queries     []string `yaml:"queries"`

	// Resolved from the environment at load time.
	APIKey string `yaml:"-"`
}

type GeminiConfig struct {
	APIKeyEnv       string  `yaml:"api_key_env"`
	Model           string  `yaml:"model"`
	Temperature     float64 `yaml:"temperature"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`

	// Resolved from the environment at load time.
	APIKey string `yaml:"-"`
}

type TrendsConfig struct {
	Strategy   string `yaml:"strategy"`
	DaysWindow int    `yaml:"days_window"`
	MinVideos  int    `yaml:"min_videos"`
	MinViews   int64  `yaml:"min_views"`
	MaxViews   int64  `yaml:"max_views"`
}

type NewsletterConfig struct {
	Output string `yaml:"output"`
	Model  string `yaml:"model"`
}

// Load reads config.yaml from dir, applies defaults, resolves env vars, and
// validates.
func Load(dir string) (*Config, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("config dir is required")
	}

	path := filepath.Join(dir, DefaultConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)
	resolveEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath
	}
	if cfg.YouTube.APIKeyEnv == "" {
		cfg.YouTube.APIKeyEnv = "YOUTUBE_API_KEY"
	}
	if cfg.YouTube.MaxPerQuery == 0 {
		cfg.YouTube.MaxPerQuery = DefaultMaxPerQuery
	}
	if cfg.Gemini.APIKeyEnv == "" {
		cfg.Gemini.APIKeyEnv = "GOOGLE_API_KEY"
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = DefaultModel
	}
	if cfg.Gemini.Temperature == 0 {
		cfg.Gemini.Temperature = DefaultTemperature
	}
	if cfg.Gemini.MaxOutputTokens == 0 {
		cfg.Gemini.MaxOutputTokens = DefaultMaxTokens
	}
	if cfg.Trends.Strategy == "" {
		cfg.Trends.Strategy = DefaultStrategy
	}
	if cfg.Trends.DaysWindow == 0 {
		if cfg.Trends.Strategy == "gemini" {
			cfg.Trends.DaysWindow = DefaultDaysWindowGemini
		} else {
			cfg.Trends.DaysWindow = DefaultDaysWindowLexical
		}
	}
	if cfg.Trends.MinVideos == 0 {
		cfg.Trends.MinVideos = DefaultMinVideos
	}
	if cfg.Trends.MinViews == 0 {
		cfg.Trends.MinViews = DefaultMinViews
	}
	if cfg.Trends.MaxViews == 0 {
		cfg.Trends.MaxViews = DefaultMaxViews
	}
	if cfg.Newsletter.Output == "" {
		cfg.Newsletter.Output = DefaultOutput
	}
	if cfg.Newsletter.Model == "" {
		cfg.Newsletter.Model = cfg.Gemini.Model
	}
}

func resolveEnv(cfg *Config) {
	cfg.YouTube.APIKey = os.Getenv(cfg.YouTube.APIKeyEnv)
	cfg.Gemini.APIKey = os.Getenv(cfg.Gemini.APIKeyEnv)
}

func validate(cfg *Config) error {
	switch cfg.Trends.Strategy {
	case "lexical", "gemini":
		// valid
	default:
		return fmt.Errorf("trends.strategy: unknown strategy %q (want lexical or gemini)", cfg.Trends.Strategy)
	}

	if cfg.Trends.MinVideos < 1 {
		return fmt.Errorf("trends.min_videos: must be at least 1, got %d", cfg.Trends.MinVideos)
	}
	if cfg.Trends.DaysWindow < 1 {
		return fmt.Errorf("trends.days_window: must be at least 1, got %d", cfg.Trends.DaysWindow)
	}
	if cfg.Trends.MinViews < 0 {
		return fmt.Errorf("trends.min_views: must not be negative, got %d", cfg.Trends.MinViews)
	}
	if cfg.Trends.MinViews > cfg.Trends.MaxViews {
		return fmt.Errorf("trends.min_views %d exceeds trends.max_views %d", cfg.Trends.MinViews, cfg.Trends.MaxViews)
	}

	if cfg.YouTube.MaxPerQuery < 1 {
		return fmt.Errorf("youtube.max_per_query: must be at least 1, got %d", cfg.YouTube.MaxPerQuery)
	}

	return nil
}
