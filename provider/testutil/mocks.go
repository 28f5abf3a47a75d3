// Package testutil provides a configurable mock chat client and sample
// fixtures shared by the provider, agent, and cmd tests.
package testutil

import (
	"context"

	"agentlab/model"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// MockClient implements model.ChatClient for testing.
//
// Every behavior is swappable through the exported func fields; the
// defaults stream a single canned fragment.
type MockClient struct {
	ChatFunc          func(ctx context.Context, messages []model.Message, callback model.StreamCallback) error
	ChatWithToolsFunc func(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error
	CompleteFunc      func(ctx context.Context, messages []model.Message) (*model.Response, error)
	PingFunc          func(ctx context.Context) error

	currentModel string
}

// NewMockClient creates a mock client with default implementations.
func NewMockClient(modelName string) *MockClient {
	mock := &MockClient{
		currentModel: modelName,
	}
	mock.ChatFunc = mock.defaultChat
	mock.ChatWithToolsFunc = mock.defaultChatWithTools
	mock.CompleteFunc = mock.defaultComplete
	mock.PingFunc = func(context.Context) error { return nil }
	return mock
}

func (m *MockClient) defaultChat(_ context.Context, messages []model.Message, callback model.StreamCallback) error {
	if len(messages) > 0 && callback != nil {
		return callback("Mock response", nil)
	}
	return nil
}

func (m *MockClient) defaultChatWithTools(_ context.Context, _ []model.Message, _ []mcptypes.Tool, callback model.StreamCallback) error {
	if callback != nil {
		return callback("Mock response with tools", nil)
	}
	return nil
}

func (m *MockClient) defaultComplete(context.Context, []model.Message) (*model.Response, error) {
	return &model.Response{
		ID:   "mock-response-1",
		Text: "Mock response",
		Usage: model.Usage{
			PromptTokens:     10,
			CompletionTokens: 5,
			TotalTokens:      15,
		},
	}, nil
}

func (m *MockClient) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	return m.ChatFunc(ctx, messages, callback)
}

func (m *MockClient) ChatWithTools(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error {
	return m.ChatWithToolsFunc(ctx, messages, tools, callback)
}

func (m *MockClient) Complete(ctx context.Context, messages []model.Message) (*model.Response, error) {
	return m.CompleteFunc(ctx, messages)
}

func (m *MockClient) GetModel() string {
	return m.currentModel
}

func (m *MockClient) SetModel(model string) {
	m.currentModel = model
}

func (m *MockClient) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

// ScriptedClient returns a mock whose Chat/ChatWithTools stream the given
// fragments in order, then report the tool calls (if any) in a final
// callback invocation.
func ScriptedClient(modelName string, fragments []string, toolCalls []model.ToolCall) *MockClient {
	mock := NewMockClient(modelName)
	script := func(_ context.Context, _ []model.Message, _ []mcptypes.Tool, callback model.StreamCallback) error {
		if callback == nil {
			return nil
		}
		for _, fragment := range fragments {
			if err := callback(fragment, nil); err != nil {
				return err
			}
		}
		if len(toolCalls) > 0 {
			return callback("", toolCalls)
		}
		return nil
	}
	mock.ChatFunc = func(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
		return script(ctx, messages, nil, callback)
	}
	mock.ChatWithToolsFunc = script
	return mock
}
