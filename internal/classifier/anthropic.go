package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/scguardian/guardian/internal/config"
)

// AnthropicGenerator asks Claude for a JSON object matching the schema. The
// Messages API has no response-format switch, so the schema travels in the
// system prompt and the reply is validated like any other.
type AnthropicGenerator struct {
	client      anthropic.Client
	model       string
	temperature float64
	maxTokens   int64
}

// NewAnthropicGenerator creates a generator using the configured API key.
// Extra options are appended after the key, e.g. option.WithBaseURL in tests.
func NewAnthropicGenerator(cfg config.ClassifierConfig, opts ...option.RequestOption) *AnthropicGenerator {
	// The gateway falls back instead of retrying
	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &AnthropicGenerator{
		client:      anthropic.NewClient(clientOpts...),
		model:       cfg.Model,
		temperature: float64(cfg.Temperature),
		maxTokens:   int64(cfg.MaxTokens),
	}
}

// Provider implements Describer.
func (g *AnthropicGenerator) Provider() string { return config.ProviderAnthropic }

// Model implements Describer.
func (g *AnthropicGenerator) Model() string { return g.model }

// GenerateStructured implements Generator.
func (g *AnthropicGenerator) GenerateStructured(ctx context.Context, req Request) (RawResponse, error) {
	schema := req.Schema
	schemaJSON, err := json.Marshal(&schema)
	if err != nil {
		return RawResponse{}, fmt.Errorf("marshal schema: %w", err)
	}

	system := req.System + "\n\nRespond with only a JSON object that validates against this JSON Schema:\n" + string(schemaJSON)

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   g.maxTokens,
		Temperature: anthropic.Float(g.temperature),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return RawResponse{}, fmt.Errorf("anthropic messages: %w", err)
	}

	out := RawResponse{
		Model:        string(resp.Model),
		InputTokens:  int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
	}
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.Text = stripCodeFence(block.Text)
			break
		}
	}
	return out, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		t = t[nl+1:]
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}
