// Package payload assembles Bedrock Anthropic message payloads around a
// fixed static prefix, with an optional cache boundary marker.
package payload

import (
	"strings"

	"github.com/cachelab-ai/cachelab/pkg/config"
	"github.com/cachelab-ai/cachelab/pkg/models"
)

// Builder produces identical static content for every request so the
// service sees a byte-stable cacheable prefix.
type Builder struct {
	static    string
	marker    string
	version   string
	maxTokens int
}

// New expands the static prefix once at construction; all payloads
// share it.
func New(cfg *config.Config) *Builder {
	return &Builder{
		static:    strings.Repeat(cfg.StaticPrompt.Sentence, cfg.StaticPrompt.Repeat),
		marker:    cfg.MarkerText,
		version:   cfg.AnthropicVersion,
		maxTokens: cfg.MaxTokens,
	}
}

// Build returns the payload for one query. When cached is set, a marker
// block carrying an ephemeral cache_control follows the static prefix,
// telling the service to cache everything up to and including it. With
// cached off no cache_control appears anywhere in the payload.
func (b *Builder) Build(query string, cached bool) models.InvokeRequest {
	blocks := []models.ContentBlock{
		{Type: "text", Text: b.static},
	}
	if cached {
		blocks = append(blocks, models.ContentBlock{
			Type:         "text",
			Text:         b.marker,
			CacheControl: &models.CacheControl{Type: models.CacheControlEphemeral},
		})
	}
	blocks = append(blocks, models.ContentBlock{Type: "text", Text: query})

	return models.InvokeRequest{
		AnthropicVersion: b.version,
		MaxTokens:        b.maxTokens,
		Messages: []models.Message{
			{Role: "user", Content: blocks},
		},
	}
}

// EstimatedStaticTokens approximates the static prefix's token count at
// four characters per token. Callers compare it against the configured
// cache-eligibility minimum to warn about prefixes too short to cache.
func (b *Builder) EstimatedStaticTokens() int {
	return len(b.static) / 4
}
