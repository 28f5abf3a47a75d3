package provider

import (
	"context"
	"fmt"

	"agentlab/mcp"
	"agentlab/model"
	"agentlab/ollama"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"
)

// OllamaClient implements model.ChatClient on top of the local Ollama
// wrapper, converting between provider-agnostic types and Ollama's API
// types at the boundary.
type OllamaClient struct {
	client *ollama.Client
}

// NewOllamaClient creates an Ollama-backed chat client.
//
// The endpoint falls back to the local default but must parse as an
// absolute URL. The model is required; a missing model is a configuration
// error, not a silent default.
func NewOllamaClient(baseURL, model string) (*OllamaClient, error) {
	client, err := ollama.NewClient(baseURL, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaClient{client: client}, nil
}

// Chat implements model.ChatClient by delegating to ChatWithTools with no tools.
func (c *OllamaClient) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	return c.ChatWithTools(ctx, messages, nil, callback)
}

// ChatWithTools implements model.ChatClient, wrapping the callback to
// convert Ollama tool calls into the provider-agnostic form.
func (c *OllamaClient) ChatWithTools(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error {
	var ollamaTools []api.Tool
	if len(tools) > 0 {
		ollamaTools = mcp.ToOllamaTools(tools)
	}

	ollamaCallback := func(chunk string, calls []api.ToolCall) error {
		if callback == nil {
			return nil
		}
		return callback(chunk, FromOllamaToolCalls(calls))
	}

	return c.client.ChatWithTools(ctx, ToOllamaMessages(messages), ollamaTools, ollamaCallback)
}

// Complete implements model.ChatClient. Ollama reports eval counts rather
// than token usage; they map one-to-one onto prompt/completion tokens.
func (c *OllamaClient) Complete(ctx context.Context, messages []model.Message) (*model.Response, error) {
	result, err := c.client.Complete(ctx, ToOllamaMessages(messages))
	if err != nil {
		return nil, err
	}

	return &model.Response{
		Text: result.Content,
		Usage: model.Usage{
			PromptTokens:     result.PromptEvalCount,
			CompletionTokens: result.EvalCount,
			TotalTokens:      result.PromptEvalCount + result.EvalCount,
		},
	}, nil
}

// SupportsToolCalling reports whether the configured model is known to
// handle Ollama's tool calling API.
func (c *OllamaClient) SupportsToolCalling() bool {
	return c.client.SupportsToolCalling()
}

// ListModels returns the models available on the Ollama server.
func (c *OllamaClient) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	return c.client.ListModels(ctx)
}

// GetModel implements model.ChatClient.
func (c *OllamaClient) GetModel() string {
	return c.client.GetModel()
}

// SetModel implements model.ChatClient.
func (c *OllamaClient) SetModel(model string) {
	c.client.SetModel(model)
}

// Ping implements model.ChatClient.
func (c *OllamaClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx)
}
