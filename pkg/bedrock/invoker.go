// Package bedrock drives single InvokeModel round trips against the
// Bedrock runtime and extracts prompt-cache usage counters from the
// responses.
package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/cachelab-ai/cachelab/pkg/config"
	"github.com/cachelab-ai/cachelab/pkg/models"
	"github.com/cachelab-ai/cachelab/pkg/payload"
)

// ModelInvoker is the slice of the Bedrock runtime client the harness
// uses. *bedrockruntime.Client satisfies it.
type ModelInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Invoker issues synchronous model calls and times them. Latency covers
// the full SDK round trip including serialization and signing, which is
// what a caller of the service experiences.
type Invoker struct {
	client  ModelInvoker
	builder *payload.Builder
	modelID string
}

// New builds the SDK client from the ambient AWS credential chain for
// the configured region.
func New(ctx context.Context, cfg *config.Config, b *payload.Builder) (*Invoker, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithClient(bedrockruntime.NewFromConfig(awsCfg), b, cfg.ModelID), nil
}

// NewWithClient wires an explicit client. Tests use it with fakes.
func NewWithClient(client ModelInvoker, b *payload.Builder, modelID string) *Invoker {
	return &Invoker{client: client, builder: b, modelID: modelID}
}

// Invoke sends one query and returns its measured invocation. Every
// failure — marshal, transport, decode — propagates; the benchmark has
// no retry path, a failed call invalidates the whole measurement.
func (inv *Invoker) Invoke(ctx context.Context, id int, query string, cached bool) (models.Invocation, error) {
	body, err := json.Marshal(inv.builder.Build(query, cached))
	if err != nil {
		return models.Invocation{}, fmt.Errorf("marshal request %d: %w", id, err)
	}

	start := time.Now()
	out, err := inv.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(inv.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return models.Invocation{}, fmt.Errorf("invoke model (request %d): %w", id, err)
	}
	latency := time.Since(start)

	var resp models.InvokeResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return models.Invocation{}, fmt.Errorf("decode response (request %d): %w", id, err)
	}

	return models.Invocation{ID: id, Latency: latency, Usage: resp.Usage}, nil
}
