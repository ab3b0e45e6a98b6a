package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/scguardian/guardian/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator requests schema-constrained chat completions from OpenAI.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAIGenerator creates a generator using the configured API key.
func NewOpenAIGenerator(cfg config.ClassifierConfig) *OpenAIGenerator {
	return NewOpenAIGeneratorWithClient(openai.NewClient(cfg.APIKey), cfg)
}

// NewOpenAIGeneratorWithClient wraps an existing client, e.g. one pointed at a
// compatible endpoint.
func NewOpenAIGeneratorWithClient(client *openai.Client, cfg config.ClassifierConfig) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Provider implements Describer.
func (g *OpenAIGenerator) Provider() string { return config.ProviderOpenAI }

// Model implements Describer.
func (g *OpenAIGenerator) Model() string { return g.model }

// GenerateStructured implements Generator.
func (g *OpenAIGenerator) GenerateStructured(ctx context.Context, req Request) (RawResponse, error) {
	schema := req.Schema

	request := openai.ChatCompletionRequest{
		Model:               g.model,
		MaxCompletionTokens: g.maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   SchemaName,
				Schema: &schema,
			},
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: req.System,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
	}

	// Reasoning models (o1, o3, o4, gpt-5) reject a custom temperature
	if !isReasoningModel(g.model) {
		request.Temperature = g.temperature
	}

	resp, err := g.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return RawResponse{}, fmt.Errorf("openai chat completion: %w", err)
	}

	out := RawResponse{
		Model:        resp.Model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}
	if len(resp.Choices) > 0 {
		out.Text = resp.Choices[0].Message.Content
	}
	return out, nil
}

func isReasoningModel(model string) bool {
	m := strings.ToLower(model)
	for _, prefix := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}
