// Package provider selects and constructs a chat client for one of the
// supported LLM backends.
//
// Every lab goes through the same two steps: parse the provider selector
// from configuration, then hand a Config to New to get a model.ChatClient.
// The labs stay backend-agnostic; all provider-specific types live behind
// the constructors here.
//
//	cfg := provider.Config{
//	    Type:    provider.TypeOllama,
//	    BaseURL: "http://localhost:11434",
//	    Model:   "llama3.1",
//	}
//	client, err := provider.New(cfg)
//	if err != nil {
//	    // handle error
//	}
//	err = client.Chat(ctx, messages, callback)
//
// Constructors never touch the network; connections are lazy and the first
// I/O happens on the first request (or an explicit Ping).
package provider

import (
	"fmt"
	"strings"
)

// Type identifies the chat-client implementation.
type Type string

const (
	TypeOpenAI     Type = "openai"
	TypeOllama     Type = "ollama"
	TypeOpenRouter Type = "openrouter"
	TypeAnthropic  Type = "anthropic"
)

// DefaultType is used when the configuration omits the provider selector.
const DefaultType = TypeOpenAI

// Config holds provider-specific settings for constructing a client.
type Config struct {
	Type    Type
	BaseURL string
	Model   string
	APIKey  string // unused for Ollama
}

// ParseType maps a user-facing provider selector to a Type. Matching is
// case-insensitive, and an empty selector falls back to DefaultType.
func ParseType(selector string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(selector)) {
	case "":
		return DefaultType, nil
	case "openai":
		return TypeOpenAI, nil
	case "ollama":
		return TypeOllama, nil
	case "openrouter":
		return TypeOpenRouter, nil
	case "anthropic":
		return TypeAnthropic, nil
	default:
		return "", fmt.Errorf("unsupported provider %q", selector)
	}
}

// DisplayName returns the human-facing name for a provider type.
func (t Type) DisplayName() string {
	switch t {
	case TypeOpenAI:
		return "OpenAI"
	case TypeOllama:
		return "Ollama"
	case TypeOpenRouter:
		return "OpenRouter"
	case TypeAnthropic:
		return "Anthropic"
	default:
		return string(t)
	}
}
