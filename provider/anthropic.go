package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"agentlab/mcp"
	"agentlab/model"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// DefaultAnthropicModel is used when the configuration omits anthropic.model.
const DefaultAnthropicModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

const defaultAnthropicBaseURL = "https://api.anthropic.com"

// anthropicMaxTokens caps generation length; the Anthropic API requires an
// explicit value on every request.
const anthropicMaxTokens = 4096

// AnthropicClient implements model.ChatClient using the official Anthropic
// Go SDK.
type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewAnthropicClient creates an Anthropic-backed chat client.
func NewAnthropicClient(baseURL, apiKey, model string) (*AnthropicClient, error) {
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic.api_key is required")
	}
	if model == "" {
		model = DefaultAnthropicModel
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &AnthropicClient{
		client: &client,
		model:  anthropic.Model(model),
	}, nil
}

// Chat implements model.ChatClient by delegating to ChatWithTools with no tools.
func (c *AnthropicClient) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	return c.ChatWithTools(ctx, messages, nil, callback)
}

// ChatWithTools implements model.ChatClient with streaming support.
func (c *AnthropicClient) ChatWithTools(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error {
	params := c.buildParams(messages)

	if len(tools) > 0 {
		params.Tools = mcp.ToAnthropicTools(tools)
	}

	stream := c.client.Messages.NewStreaming(ctx, params)

	msg := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()

		if err := msg.Accumulate(event); err != nil {
			return fmt.Errorf("error accumulating message: %w", err)
		}

		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			if deltaVariant, ok := eventVariant.Delta.AsAny().(anthropic.TextDelta); ok && callback != nil {
				if err := callback(deltaVariant.Text, nil); err != nil {
					return err
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("anthropic streaming failed: %w", err)
	}

	// Tool use blocks only materialize once the stream completes.
	if callback != nil {
		if toolCalls := extractAnthropicToolCalls(msg.Content); len(toolCalls) > 0 {
			return callback("", toolCalls)
		}
	}

	return nil
}

// Complete implements model.ChatClient with a single non-streaming request.
func (c *AnthropicClient) Complete(ctx context.Context, messages []model.Message) (*model.Response, error) {
	msg, err := c.client.Messages.New(ctx, c.buildParams(messages))
	if err != nil {
		return nil, fmt.Errorf("anthropic chat failed: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			text += textBlock.Text
		}
	}

	return &model.Response{
		ID:   msg.ID,
		Text: text,
		Usage: model.Usage{
			PromptTokens:     int(msg.Usage.InputTokens),
			CompletionTokens: int(msg.Usage.OutputTokens),
			TotalTokens:      int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}

// GetModel implements model.ChatClient.
func (c *AnthropicClient) GetModel() string {
	return string(c.model)
}

// SetModel implements model.ChatClient.
func (c *AnthropicClient) SetModel(model string) {
	c.model = anthropic.Model(model)
}

// Ping implements model.ChatClient. Anthropic has no health endpoint, so a
// minimal one-token request stands in.
func (c *AnthropicClient) Ping(ctx context.Context) error {
	_, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		return fmt.Errorf("anthropic ping failed: %w", err)
	}
	return nil
}

func (c *AnthropicClient) buildParams(messages []model.Message) anthropic.MessageNewParams {
	anthropicMessages, systemBlocks := toAnthropicMessages(messages)

	params := anthropic.MessageNewParams{
		Model:     c.model,
		Messages:  anthropicMessages,
		MaxTokens: anthropicMaxTokens,
	}
	if len(systemBlocks) > 0 {
		params.System = systemBlocks
	}
	return params
}

// toAnthropicMessages converts provider-agnostic messages to Anthropic's
// format. System turns move to the separate system parameter; tool results
// ride as user messages.
func toAnthropicMessages(messages []model.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var systemBlocks []anthropic.TextBlockParam
	anthropicMsgs := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{
				Text: msg.Content,
			})
		case "assistant":
			anthropicMsgs = append(anthropicMsgs,
				anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)),
			)
		default:
			anthropicMsgs = append(anthropicMsgs,
				anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)),
			)
		}
	}

	return anthropicMsgs, systemBlocks
}

func extractAnthropicToolCalls(content []anthropic.ContentBlockUnion) []model.ToolCall {
	var toolCalls []model.ToolCall

	for _, block := range content {
		if toolUse, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			var args map[string]any
			if err := json.Unmarshal(toolUse.Input, &args); err != nil {
				continue
			}

			toolCalls = append(toolCalls, model.ToolCall{
				Name:      toolUse.Name,
				Arguments: args,
			})
		}
	}

	return toolCalls
}
