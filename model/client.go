package model

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// ChatClient abstracts LLM backends (Ollama, OpenAI, OpenRouter, Anthropic)
// using provider-agnostic types from the model layer.
//
// This interface is defined in the model package (not provider package) to
// avoid import cycles: provider implementations can import model, and the
// labs can use the ChatClient interface without importing the provider
// package.
type ChatClient interface {
	// Chat sends messages and streams response fragments back via callback.
	Chat(ctx context.Context, messages []Message, callback StreamCallback) error

	// ChatWithTools sends messages with available tools and streams responses.
	// Tool calls requested by the model are delivered through the callback.
	ChatWithTools(ctx context.Context, messages []Message, tools []mcptypes.Tool, callback StreamCallback) error

	// Complete sends messages and returns the full buffered response,
	// including token usage when the backend reports it.
	Complete(ctx context.Context, messages []Message) (*Response, error)

	// GetModel returns the currently selected model name.
	GetModel() string

	// SetModel changes the active model.
	SetModel(model string)

	// Ping checks if the backend is reachable. No other method performs
	// network I/O before the first request.
	Ping(ctx context.Context) error
}

// StreamCallback is called for each fragment of a streamed response.
//
// Returning a non-nil error stops the stream; the error propagates to the
// caller of Chat/ChatWithTools.
type StreamCallback func(chunk string, toolCalls []ToolCall) error
