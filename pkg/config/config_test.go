package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Region != "us-east-1" {
		t.Errorf("expected us-east-1, got %s", cfg.Region)
	}
	if cfg.Workers != 5 {
		t.Errorf("expected 5 workers, got %d", cfg.Workers)
	}
	if cfg.StaticPrompt.Repeat != 300 {
		t.Errorf("expected repeat 300, got %d", cfg.StaticPrompt.Repeat)
	}
	if cfg.Pauses.CacheSettle != 2*time.Second {
		t.Errorf("expected 2s cache settle, got %v", cfg.Pauses.CacheSettle)
	}
	if cfg.Pauses.BetweenRequests != 500*time.Millisecond {
		t.Errorf("expected 500ms between requests, got %v", cfg.Pauses.BetweenRequests)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_MODEL_ID", "us.anthropic.claude-haiku-test-v1:0")

	content := `
region: eu-west-1
model_id: ${TEST_MODEL_ID}
max_tokens: 256
static_prompt:
  repeat: 400
workers: 3
pauses:
  cache_settle: 5s
  between_requests: 250ms
pricing:
  - model: ${TEST_MODEL_ID}
    input_per_mtok: 3.0
    output_per_mtok: 15.0
    cache_write_per_mtok: 3.75
    cache_read_per_mtok: 0.3
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Region != "eu-west-1" {
		t.Errorf("expected eu-west-1, got %s", cfg.Region)
	}
	if cfg.ModelID != "us.anthropic.claude-haiku-test-v1:0" {
		t.Errorf("env var not expanded: got %s", cfg.ModelID)
	}
	if cfg.StaticPrompt.Repeat != 400 {
		t.Errorf("expected repeat 400, got %d", cfg.StaticPrompt.Repeat)
	}
	if cfg.StaticPrompt.Sentence == "" {
		t.Error("default sentence should survive partial static_prompt override")
	}
	if cfg.Pauses.CacheSettle != 5*time.Second {
		t.Errorf("expected 5s cache settle, got %v", cfg.Pauses.CacheSettle)
	}
	if len(cfg.Pricing) != 1 {
		t.Fatalf("expected 1 pricing row, got %d", len(cfg.Pricing))
	}
	if cfg.Pricing[0].CacheReadPerMTok != 0.3 {
		t.Errorf("expected cache read rate 0.3, got %v", cfg.Pricing[0].CacheReadPerMTok)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty region", func(c *Config) { c.Region = "" }},
		{"empty model", func(c *Config) { c.ModelID = "" }},
		{"zero max_tokens", func(c *Config) { c.MaxTokens = 0 }},
		{"empty sentence", func(c *Config) { c.StaticPrompt.Sentence = "" }},
		{"zero repeat", func(c *Config) { c.StaticPrompt.Repeat = 0 }},
		{"empty query template", func(c *Config) { c.QueryTemplate = "" }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"negative pause", func(c *Config) { c.Pauses.CacheSettle = -time.Second }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
