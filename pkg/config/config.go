// Package config loads and validates the application configuration from a
// YAML file with environment variable expansion.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Sources struct {
		Feeds     []string      `yaml:"feeds" json:"feeds" jsonschema:"description=RSS/Atom feed URLs to poll for trend candidates"`
		FeedLimit int           `yaml:"feed_limit" json:"feed_limit" jsonschema:"default=5,description=Items taken per feed"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Per-feed fetch timeout"`
		UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Trendscribe/1.0,description=User agent for feed requests"`
	} `yaml:"sources" json:"sources" jsonschema:"description=Trend source configuration"`

	NewsAPI struct {
		APIKey  string        `yaml:"api_key" json:"api_key" jsonschema:"description=News search API key (can use environment variable)"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"description=Override the news search API base URL"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Search request timeout"`
	} `yaml:"newsapi" json:"newsapi" jsonschema:"description=News search API configuration"`

	TrendsFeed struct {
		URL     string        `yaml:"url" json:"url" jsonschema:"description=Trends RSS feed URL (defaults to the daily trends feed)"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Trends feed fetch timeout"`
	} `yaml:"trends_feed" json:"trends_feed" jsonschema:"description=Trends feed configuration"`

	Categories []string `yaml:"categories" json:"categories" jsonschema:"description=Category names used for classification and publishing"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for article generation"`

	Content ContentConfig `yaml:"content" json:"content" jsonschema:"description=Content generation settings"`

	Publish PublishConfig `yaml:"publish" json:"publish" jsonschema:"description=CMS publishing configuration"`

	Database struct {
		DSN string `yaml:"dsn" json:"dsn" jsonschema:"default=file:trendscribe.db?cache=shared&mode=rwc,description=Database connection string"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Auto struct {
		Interval time.Duration `yaml:"interval" json:"interval" jsonschema:"default=24h,description=Minimum gap between automatic pipeline runs"`
	} `yaml:"auto" json:"auto" jsonschema:"description=Automatic run configuration"`
}

// LLMConfig holds the completion provider settings
type LLMConfig struct {
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name"`
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint (optional)"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,description=Temperature for response generation"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=120s,description=Completion request timeout"`
}

// ContentConfig holds the stored style settings that shape generation
type ContentConfig struct {
	UseAI           bool   `yaml:"use_ai" json:"use_ai" jsonschema:"default=false,description=Generate articles with the LLM instead of the template"`
	Research        bool   `yaml:"research" json:"research" jsonschema:"default=false,description=Extract source article text to ground AI generation"`
	BrandVoice      string `yaml:"brand_voice" json:"brand_voice" jsonschema:"description=Brand voice and personality description"`
	WritingStyle    string `yaml:"writing_style" json:"writing_style" jsonschema:"default=professional,enum=professional,enum=conversational,enum=educational,enum=news,enum=casual,description=Writing style"`
	ContentLength   string `yaml:"content_length" json:"content_length" jsonschema:"default=medium,enum=short,enum=medium,enum=long,enum=comprehensive,description=Target article length"`
	TargetAudience  string `yaml:"target_audience" json:"target_audience" jsonschema:"description=Target audience description"`
	IncludeExamples bool   `yaml:"include_examples" json:"include_examples" jsonschema:"default=false,description=Ask for practical examples"`
	IncludeStats    bool   `yaml:"include_stats" json:"include_stats" jsonschema:"default=false,description=Ask for statistics and data"`
	IncludeCTA      bool   `yaml:"include_cta" json:"include_cta" jsonschema:"default=false,description=Ask for a closing call-to-action"`

	ResearchTimeout   time.Duration `yaml:"research_timeout" json:"research_timeout" jsonschema:"default=30s,description=Per-article research extraction timeout"`
	ResearchUserAgent string        `yaml:"research_user_agent" json:"research_user_agent" jsonschema:"default=Trendscribe/1.0,description=User agent for research requests"`
}

// PublishConfig holds CMS connection settings
type PublishConfig struct {
	Enabled  bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Push generated drafts to the CMS"`
	BaseURL  string        `yaml:"base_url" json:"base_url" jsonschema:"description=CMS site root URL"`
	Username string        `yaml:"username" json:"username" jsonschema:"description=Application-password user"`
	Password string        `yaml:"password" json:"password" jsonschema:"description=Application password (can use environment variable)"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=CMS request timeout"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for sources
	if cfg.Sources.FeedLimit == 0 {
		cfg.Sources.FeedLimit = 5
	}
	if cfg.Sources.Timeout == 0 {
		cfg.Sources.Timeout = 15 * time.Second
	}
	if cfg.Sources.UserAgent == "" {
		cfg.Sources.UserAgent = "Trendscribe/1.0"
	}

	// set defaults for trend providers
	if cfg.NewsAPI.Timeout == 0 {
		cfg.NewsAPI.Timeout = 15 * time.Second
	}
	if cfg.TrendsFeed.Timeout == 0 {
		cfg.TrendsFeed.Timeout = 15 * time.Second
	}

	// set defaults for LLM
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.7
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 120 * time.Second
	}

	// set defaults for content
	if cfg.Content.WritingStyle == "" {
		cfg.Content.WritingStyle = "professional"
	}
	if cfg.Content.ContentLength == "" {
		cfg.Content.ContentLength = "medium"
	}
	if cfg.Content.ResearchTimeout == 0 {
		cfg.Content.ResearchTimeout = 30 * time.Second
	}
	if cfg.Content.ResearchUserAgent == "" {
		cfg.Content.ResearchUserAgent = "Trendscribe/1.0"
	}

	// set defaults for publish and database
	if cfg.Publish.Timeout == 0 {
		cfg.Publish.Timeout = 30 * time.Second
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:trendscribe.db?cache=shared&mode=rwc"
	}
	if cfg.Auto.Interval == 0 {
		cfg.Auto.Interval = 24 * time.Hour
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

var (
	validStyles  = map[string]bool{"professional": true, "conversational": true, "educational": true, "news": true, "casual": true}
	validLengths = map[string]bool{"short": true, "medium": true, "long": true, "comprehensive": true}
)

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.Content.UseAI && cfg.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required when content.use_ai is enabled")
	}
	if !validStyles[cfg.Content.WritingStyle] {
		return fmt.Errorf("content.writing_style %q is not supported", cfg.Content.WritingStyle)
	}
	if !validLengths[cfg.Content.ContentLength] {
		return fmt.Errorf("content.content_length %q is not supported", cfg.Content.ContentLength)
	}
	if cfg.Content.Research && cfg.Content.ResearchTimeout < time.Second {
		return fmt.Errorf("content.research_timeout must be at least 1 second")
	}
	if cfg.Publish.Enabled {
		if cfg.Publish.BaseURL == "" {
			return fmt.Errorf("publish.base_url is required when publishing is enabled")
		}
		if cfg.Publish.Username == "" || cfg.Publish.Password == "" {
			return fmt.Errorf("publish.username and publish.password are required when publishing is enabled")
		}
	}
	return nil
}
