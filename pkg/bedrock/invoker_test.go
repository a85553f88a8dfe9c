package bedrock

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/cachelab-ai/cachelab/pkg/config"
	"github.com/cachelab-ai/cachelab/pkg/payload"
)

type fakeClient struct {
	resp      string
	err       error
	lastBody  string
	lastModel string
	calls     int
}

func (f *fakeClient) InvokeModel(_ context.Context, in *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.calls++
	f.lastBody = string(in.Body)
	f.lastModel = aws.ToString(in.ModelId)
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.resp)}, nil
}

func newTestInvoker(t *testing.T, fake *fakeClient) *Invoker {
	t.Helper()
	cfg := config.Default()
	cfg.StaticPrompt.Repeat = 3
	return NewWithClient(fake, payload.New(cfg), cfg.ModelID)
}

func TestInvokeParsesUsage(t *testing.T) {
	fake := &fakeClient{resp: `{
		"content": [{"type": "text", "text": "hi"}],
		"usage": {
			"input_tokens": 12,
			"output_tokens": 48,
			"cache_creation_input_tokens": 1290,
			"cache_read_input_tokens": 0
		}
	}`}
	inv := newTestInvoker(t, fake)

	got, err := inv.Invoke(context.Background(), 1, "Question 1?", true)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 1 {
		t.Errorf("expected id 1, got %d", got.ID)
	}
	if got.Usage.InputTokens != 12 || got.Usage.OutputTokens != 48 {
		t.Errorf("unexpected input/output counters: %+v", got.Usage)
	}
	if got.Usage.CacheCreationInputTokens != 1290 {
		t.Errorf("expected 1290 cache write tokens, got %d", got.Usage.CacheCreationInputTokens)
	}
	if got.Usage.CacheReadInputTokens != 0 {
		t.Errorf("expected 0 cache read tokens, got %d", got.Usage.CacheReadInputTokens)
	}
	if got.Latency < 0 {
		t.Errorf("latency must not be negative, got %v", got.Latency)
	}
	if fake.lastModel != config.Default().ModelID {
		t.Errorf("model id not passed through: %s", fake.lastModel)
	}
}

func TestInvokeAbsentCountersAreZero(t *testing.T) {
	fake := &fakeClient{resp: `{"usage": {"input_tokens": 9, "output_tokens": 40}}`}
	inv := newTestInvoker(t, fake)

	got, err := inv.Invoke(context.Background(), 2, "Question 2?", true)
	if err != nil {
		t.Fatal(err)
	}
	if got.Usage.CacheCreationInputTokens != 0 || got.Usage.CacheReadInputTokens != 0 {
		t.Errorf("absent cache counters must decode to zero, got %+v", got.Usage)
	}
}

func TestInvokeBodyReflectsCacheFlag(t *testing.T) {
	fake := &fakeClient{resp: `{"usage": {}}`}
	inv := newTestInvoker(t, fake)

	if _, err := inv.Invoke(context.Background(), 1, "Question 1?", true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fake.lastBody, `"cache_control":{"type":"ephemeral"}`) {
		t.Error("cached request body must carry the ephemeral marker")
	}

	if _, err := inv.Invoke(context.Background(), 2, "Question 2?", false); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(fake.lastBody, "cache_control") {
		t.Error("uncached request body must not mention cache_control")
	}
}

func TestInvokeTransportError(t *testing.T) {
	fake := &fakeClient{err: errors.New("throttled")}
	inv := newTestInvoker(t, fake)

	_, err := inv.Invoke(context.Background(), 4, "Question 4?", true)
	if err == nil {
		t.Fatal("expected transport error to propagate")
	}
	if !strings.Contains(err.Error(), "request 4") {
		t.Errorf("error should name the request id: %v", err)
	}
	if !errors.Is(err, fake.err) {
		t.Error("wrapped error should unwrap to the transport error")
	}
}

func TestInvokeMalformedResponse(t *testing.T) {
	fake := &fakeClient{resp: `{"usage": `}
	inv := newTestInvoker(t, fake)

	_, err := inv.Invoke(context.Background(), 5, "Question 5?", true)
	if err == nil {
		t.Fatal("expected decode error to propagate")
	}
	if !strings.Contains(err.Error(), "decode response") {
		t.Errorf("unexpected error: %v", err)
	}
}
