package models

// CacheControlEphemeral is the only cache_control type the Anthropic
// API currently accepts.
const CacheControlEphemeral = "ephemeral"

// CacheControl marks a content block as a prompt-cache boundary.
type CacheControl struct {
	Type string `json:"type"`
}

// ContentBlock is one block of message content. A block carrying a
// CacheControl tells the service to cache the prompt prefix up to and
// including that block.
type ContentBlock struct {
	Type         string        `json:"type"`
	Text         string        `json:"text"`
	CacheControl *CacheControl `json:"cache_control,omitempty"`
}

// Message is a single conversation turn in the Anthropic message format.
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// InvokeRequest is the Bedrock Anthropic messages payload.
type InvokeRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	Messages         []Message `json:"messages"`
}

// InvokeResponse is the slice of the Bedrock response body the harness
// consumes. Generated text is discarded; only usage counters matter.
type InvokeResponse struct {
	Usage Usage `json:"usage"`
}
