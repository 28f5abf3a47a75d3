package provider

import (
	"context"
	"fmt"

	"agentlab/mcp"
	"agentlab/model"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultOpenAIModel is used when the configuration omits openai.model.
const DefaultOpenAIModel = "gpt-4o-mini"

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient implements model.ChatClient using the official OpenAI Go SDK.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates an OpenAI-backed chat client.
//
// The API key is required. The model falls back to DefaultOpenAIModel and
// the base URL to the public API endpoint.
func NewOpenAIClient(baseURL, apiKey, model string) (*OpenAIClient, error) {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if apiKey == "" {
		return nil, fmt.Errorf("openai.api_key is required")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenAIClient{
		client: client,
		model:  model,
	}, nil
}

// Chat implements model.ChatClient by delegating to ChatWithTools with no tools.
func (c *OpenAIClient) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	return c.ChatWithTools(ctx, messages, nil, callback)
}

// ChatWithTools implements model.ChatClient with streaming support.
func (c *OpenAIClient) ChatWithTools(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error {
	params := openai.ChatCompletionNewParams{
		Messages: ToOpenAIMessages(messages),
		Model:    openai.ChatModel(c.model),
	}

	if len(tools) > 0 {
		params.Tools = mcp.ToOpenAITools(tools)
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	acc := openai.ChatCompletionAccumulator{}

	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)

		if tool, ok := acc.JustFinishedToolCall(); ok && callback != nil {
			call := model.ToolCall{
				Name:      tool.Name,
				Arguments: ParseToolArguments(tool.Arguments),
			}
			if err := callback("", []model.ToolCall{call}); err != nil {
				return err
			}
		}

		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			if callback != nil {
				if err := callback(chunk.Choices[0].Delta.Content, nil); err != nil {
					return err
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("openai streaming failed: %w", err)
	}

	return nil
}

// Complete implements model.ChatClient with a single non-streaming request.
func (c *OpenAIClient) Complete(ctx context.Context, messages []model.Message) (*model.Response, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: ToOpenAIMessages(messages),
		Model:    openai.ChatModel(c.model),
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	return &model.Response{
		ID:   completion.ID,
		Text: completion.Choices[0].Message.Content,
		Usage: model.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}, nil
}

// GetModel implements model.ChatClient.
func (c *OpenAIClient) GetModel() string {
	return c.model
}

// SetModel implements model.ChatClient.
func (c *OpenAIClient) SetModel(model string) {
	c.model = model
}

// Ping implements model.ChatClient by listing models.
func (c *OpenAIClient) Ping(ctx context.Context) error {
	if _, err := c.client.Models.List(ctx); err != nil {
		return fmt.Errorf("openai ping failed: %w", err)
	}
	return nil
}
