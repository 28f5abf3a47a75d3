package provider

import (
	"agentlab/config"
	"agentlab/model"
)

// FromConfig maps the application configuration onto the provider Config
// for whichever backend the selector names.
func FromConfig(cfg *config.Config) (Config, error) {
	providerType, err := ParseType(cfg.AI.Provider)
	if err != nil {
		return Config{}, err
	}

	switch providerType {
	case TypeOllama:
		return Config{
			Type:    TypeOllama,
			BaseURL: cfg.Ollama.Endpoint,
			Model:   cfg.Ollama.Model,
		}, nil
	case TypeOpenRouter:
		return Config{
			Type:   TypeOpenRouter,
			APIKey: cfg.OpenRouter.APIKey,
			Model:  cfg.OpenRouter.Model,
		}, nil
	case TypeAnthropic:
		return Config{
			Type:   TypeAnthropic,
			APIKey: cfg.Anthropic.APIKey,
			Model:  cfg.Anthropic.Model,
		}, nil
	default:
		return Config{
			Type:   TypeOpenAI,
			APIKey: cfg.OpenAI.APIKey,
			Model:  cfg.OpenAI.Model,
		}, nil
	}
}

// Resolve is the one call every lab makes: selector to client in one step.
func Resolve(cfg *config.Config) (model.ChatClient, error) {
	providerCfg, err := FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(providerCfg)
}
