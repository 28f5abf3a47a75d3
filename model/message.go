package model

import "time"

// Message represents a single role-tagged turn in a conversation.
type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
}

// ToolCall is a provider-agnostic tool invocation requested by the model.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// Usage carries token accounting when the provider reports it.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is a buffered, non-streaming chat result.
//
// ID is the provider-assigned response identifier when one exists
// (OpenAI and Anthropic set it, Ollama does not).
type Response struct {
	ID    string
	Text  string
	Usage Usage
}
