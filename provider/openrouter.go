package provider

import (
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterClient reuses the OpenAI client machinery against OpenRouter's
// OpenAI-compatible API. Only construction differs: OpenRouter routes to
// many upstream vendors, so there is no sensible default model.
type OpenRouterClient struct {
	OpenAIClient
}

// NewOpenRouterClient creates an OpenRouter-backed chat client.
func NewOpenRouterClient(baseURL, apiKey, model string) (*OpenRouterClient, error) {
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	if apiKey == "" {
		return nil, fmt.Errorf("openrouter.api_key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("openrouter.model is required (no default model)")
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenRouterClient{
		OpenAIClient: OpenAIClient{
			client: client,
			model:  model,
		},
	}, nil
}
