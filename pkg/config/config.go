package config

import (
	"fmt"
	"os"
	"time"

	"github.com/cachelab-ai/cachelab/pkg/models"
	"gopkg.in/yaml.v3"
)

// Config holds all cachelab configuration.
type Config struct {
	Region           string                `yaml:"region"`
	ModelID          string                `yaml:"model_id"`
	AnthropicVersion string                `yaml:"anthropic_version"`
	MaxTokens        int                   `yaml:"max_tokens"`
	StaticPrompt     StaticPromptConfig    `yaml:"static_prompt"`
	MarkerText       string                `yaml:"marker_text"`
	QueryTemplate    string                `yaml:"query_template"`
	WarmupQuery      string                `yaml:"warmup_query"`
	Workers          int                   `yaml:"workers"`
	Pauses           PauseConfig           `yaml:"pauses"`
	DBPath           string                `yaml:"db_path"`
	Pricing          []models.ModelPricing `yaml:"pricing"`
}

// StaticPromptConfig shapes the cacheable prefix sent with every request.
// Sentence repeated Repeat times must clear MinCacheTokens or the
// service silently skips caching.
type StaticPromptConfig struct {
	Sentence       string `yaml:"sentence"`
	Repeat         int    `yaml:"repeat"`
	MinCacheTokens int    `yaml:"min_cache_tokens"`
}

// PauseConfig holds the fixed waits between scenario phases.
type PauseConfig struct {
	CacheSettle     time.Duration `yaml:"cache_settle"`
	BetweenRequests time.Duration `yaml:"between_requests"`
}

// UnmarshalYAML parses pauses in time.ParseDuration syntax ("2s",
// "500ms"). Omitted fields keep whatever the struct already holds, so
// partial overrides of the defaults work.
func (p *PauseConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		CacheSettle     string `yaml:"cache_settle"`
		BetweenRequests string `yaml:"between_requests"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.CacheSettle != "" {
		d, err := time.ParseDuration(raw.CacheSettle)
		if err != nil {
			return fmt.Errorf("parse cache_settle: %w", err)
		}
		p.CacheSettle = d
	}
	if raw.BetweenRequests != "" {
		d, err := time.ParseDuration(raw.BetweenRequests)
		if err != nil {
			return fmt.Errorf("parse between_requests: %w", err)
		}
		p.BetweenRequests = d
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Region:           "us-east-1",
		ModelID:          "us.anthropic.claude-sonnet-4-5-20250929-v1:0",
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        512,
		StaticPrompt: StaticPromptConfig{
			Sentence:       "This is static context that will be cached. ",
			Repeat:         300,
			MinCacheTokens: 1024,
		},
		MarkerText:    "End of static content.",
		QueryTemplate: "Question %d?",
		WarmupQuery:   "Warmup question?",
		Workers:       5,
		Pauses: PauseConfig{
			CacheSettle:     2 * time.Second,
			BetweenRequests: 500 * time.Millisecond,
		},
		DBPath: "cachelab.db",
	}
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configs that cannot drive a benchmark.
func (c *Config) Validate() error {
	switch {
	case c.Region == "":
		return fmt.Errorf("config: region is required")
	case c.ModelID == "":
		return fmt.Errorf("config: model_id is required")
	case c.AnthropicVersion == "":
		return fmt.Errorf("config: anthropic_version is required")
	case c.MaxTokens < 1:
		return fmt.Errorf("config: max_tokens must be at least 1, got %d", c.MaxTokens)
	case c.StaticPrompt.Sentence == "":
		return fmt.Errorf("config: static_prompt.sentence is required")
	case c.StaticPrompt.Repeat < 1:
		return fmt.Errorf("config: static_prompt.repeat must be at least 1, got %d", c.StaticPrompt.Repeat)
	case c.QueryTemplate == "":
		return fmt.Errorf("config: query_template is required")
	case c.Workers < 1:
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Workers)
	case c.Pauses.CacheSettle < 0 || c.Pauses.BetweenRequests < 0:
		return fmt.Errorf("config: pauses must not be negative")
	}
	return nil
}
