package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError names a single misconfigured setting.
type ValidationError struct {
	Key    string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Reason)
}

// ValidationErrors aggregates every problem found in one pass, so a user
// fixing their config sees the full list rather than one error per run.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// supportedProviders mirrors the selectors the provider factory accepts.
var supportedProviders = map[string]bool{
	"openai":     true,
	"ollama":     true,
	"openrouter": true,
	"anthropic":  true,
}

// Validate checks the required fields for the active provider and returns
// every problem found. A nil return means the configuration can resolve.
//
// Only the active provider's section is validated; the labs run exactly
// one backend per process, and an unused section may legitimately be blank.
func (c *Config) Validate() error {
	var errs ValidationErrors

	selector := strings.ToLower(strings.TrimSpace(c.AI.Provider))
	if selector == "" {
		selector = "openai" // resolution default
	}
	if !supportedProviders[selector] {
		errs = append(errs, ValidationError{
			Key:    "ai.provider",
			Reason: fmt.Sprintf("unsupported provider %q", c.AI.Provider),
		})
		return errs
	}

	switch selector {
	case "openai":
		if c.OpenAI.APIKey == "" {
			errs = append(errs, ValidationError{Key: "openai.api_key", Reason: "required"})
		}
		// openai.model is optional: resolution falls back to gpt-4o-mini
	case "ollama":
		if c.Ollama.Model == "" {
			errs = append(errs, ValidationError{Key: "ollama.model", Reason: "required (no default model)"})
		}
		if c.Ollama.Endpoint != "" {
			if parsed, err := url.Parse(c.Ollama.Endpoint); err != nil || !parsed.IsAbs() || parsed.Host == "" {
				errs = append(errs, ValidationError{
					Key:    "ollama.endpoint",
					Reason: fmt.Sprintf("not an absolute URL: %q", c.Ollama.Endpoint),
				})
			}
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			errs = append(errs, ValidationError{Key: "openrouter.api_key", Reason: "required"})
		}
		if c.OpenRouter.Model == "" {
			errs = append(errs, ValidationError{Key: "openrouter.model", Reason: "required (no default model)"})
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			errs = append(errs, ValidationError{Key: "anthropic.api_key", Reason: "required"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
