package provider

import (
	"fmt"

	"agentlab/model"
)

// New creates a chat client for the configured provider.
//
// This is the centralized factory for every backend the labs support.
// Each constructor validates its own required fields, so a missing API key
// or model surfaces here with an error naming the offending setting.
func New(cfg Config) (model.ChatClient, error) {
	var client model.ChatClient
	var err error
	switch cfg.Type {
	case TypeOpenAI:
		client, err = NewOpenAIClient(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case TypeOpenRouter:
		client, err = NewOpenRouterClient(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case TypeAnthropic:
		client, err = NewAnthropicClient(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case TypeOllama:
		client, err = NewOllamaClient(cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported provider %q", string(cfg.Type))
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Describe returns a human-readable "Provider (model)" label for the
// configuration, applying the same model fallbacks as New. Purely derived;
// it never fails and never constructs a client.
func Describe(cfg Config) string {
	model := cfg.Model
	if model == "" {
		switch cfg.Type {
		case TypeOpenAI:
			model = DefaultOpenAIModel
		case TypeAnthropic:
			model = DefaultAnthropicModel
		}
	}
	return fmt.Sprintf("%s (%s)", cfg.Type.DisplayName(), model)
}
