package llm

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// greedyTemperature stands in for 0: go-openai drops a zero temperature
// from the request body and servers then apply their own default.
const greedyTemperature = math.SmallestNonzeroFloat32

// OpenAIModel calls an OpenAI-compatible chat completion endpoint, such as
// vLLM or Ollama serving the pediatric model.
type OpenAIModel struct {
	client    *openai.Client
	model     string
	maxTokens int
}

type OpenAIOptions struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

func NewOpenAIModel(opts OpenAIOptions) *OpenAIModel {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}

	return &OpenAIModel{
		client:    openai.NewClientWithConfig(cfg),
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
	}
}

func (m *OpenAIModel) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   m.maxTokens,
		Temperature: greedyTemperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Verify checks that the endpoint serves the configured model.
func (m *OpenAIModel) Verify(ctx context.Context) error {
	list, err := m.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	for _, model := range list.Models {
		if model.ID == m.model {
			return nil
		}
	}
	return fmt.Errorf("model %q is not served by the endpoint", m.model)
}
