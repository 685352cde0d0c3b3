package llm

import (
	"context"
	"strings"
	"time"

	commonhttp "pediatric-triage/internal/common/http"
)

// Gemma chat turn markers. The generate endpoint takes a raw prompt, so the
// chat template is applied here.
const (
	turnUser  = "<start_of_turn>user\n"
	turnModel = "<end_of_turn>\n<start_of_turn>model\n"
)

// GenAIModel posts raw prompts to a text-generation service exposing
// POST {base}/api/ai/generate.
type GenAIModel struct {
	client    *commonhttp.Client
	baseURL   string
	apiKey    string
	maxTokens int
}

func NewGenAIModel(baseURL, apiKey string, maxTokens int, timeout time.Duration) *GenAIModel {
	return &GenAIModel{
		client:    commonhttp.NewClient(timeout),
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		maxTokens: maxTokens,
	}
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	DoSample    bool    `json:"do_sample"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func (m *GenAIModel) Generate(ctx context.Context, prompt string) (string, error) {
	headers := map[string]string{}
	if m.apiKey != "" {
		headers["Authorization"] = "Bearer " + m.apiKey
	}

	req := generateRequest{
		Prompt:    turnUser + prompt + turnModel,
		MaxTokens: m.maxTokens,
	}
	var resp generateResponse
	if err := m.client.PostJSON(ctx, m.baseURL+"/api/ai/generate", headers, req, &resp); err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
