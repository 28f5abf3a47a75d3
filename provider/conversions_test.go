package provider

import (
	"testing"

	"agentlab/model"

	"github.com/ollama/ollama/api"
)

func TestToOllamaMessages(t *testing.T) {
	messages := []model.Message{
		{Role: "system", Content: "You are helpful."},
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Hi there!"},
	}

	converted := ToOllamaMessages(messages)

	if len(converted) != len(messages) {
		t.Fatalf("expected %d messages, got %d", len(messages), len(converted))
	}
	for i, msg := range converted {
		if msg.Role != messages[i].Role {
			t.Errorf("message %d: role %q, want %q", i, msg.Role, messages[i].Role)
		}
		if msg.Content != messages[i].Content {
			t.Errorf("message %d: content %q, want %q", i, msg.Content, messages[i].Content)
		}
	}
}

func TestToOllamaMessagesEmpty(t *testing.T) {
	if got := ToOllamaMessages(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %d messages", len(got))
	}
}

func TestToOpenAIMessagesRoles(t *testing.T) {
	messages := []model.Message{
		{Role: "system", Content: "instructions"},
		{Role: "user", Content: "question"},
		{Role: "assistant", Content: "answer"},
		{Role: "tool", Content: "tool output"},
	}

	converted := ToOpenAIMessages(messages)
	if len(converted) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(converted))
	}
	if converted[0].OfSystem == nil {
		t.Error("system message not converted to system param")
	}
	if converted[1].OfUser == nil {
		t.Error("user message not converted to user param")
	}
	if converted[2].OfAssistant == nil {
		t.Error("assistant message not converted to assistant param")
	}
	// Tool output rides as a user message
	if converted[3].OfUser == nil {
		t.Error("tool message not converted to user param")
	}
}

func TestFromOllamaToolCalls(t *testing.T) {
	calls := []api.ToolCall{
		{
			Function: api.ToolCallFunction{
				Name:      "get_weather",
				Arguments: map[string]any{"city": "Kingston"},
			},
		},
	}

	converted := FromOllamaToolCalls(calls)

	if len(converted) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(converted))
	}
	if converted[0].Name != "get_weather" {
		t.Errorf("name = %q, want get_weather", converted[0].Name)
	}
	if converted[0].Arguments["city"] != "Kingston" {
		t.Errorf("arguments = %v, want city=Kingston", converted[0].Arguments)
	}
}

func TestFromOllamaToolCallsNilSemantics(t *testing.T) {
	if got := FromOllamaToolCalls(nil); got != nil {
		t.Errorf("expected nil for nil input, got %v", got)
	}
	if got := FromOllamaToolCalls([]api.ToolCall{}); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestParseToolArguments(t *testing.T) {
	args := ParseToolArguments(`{"city": "Kingston", "days": 3}`)
	if args["city"] != "Kingston" {
		t.Errorf("city = %v, want Kingston", args["city"])
	}
	if args["days"] != float64(3) {
		t.Errorf("days = %v, want 3", args["days"])
	}
}

func TestParseToolArgumentsMalformed(t *testing.T) {
	args := ParseToolArguments(`{"broken":`)
	if args == nil {
		t.Fatal("expected empty map, got nil")
	}
	if len(args) != 0 {
		t.Errorf("expected empty map, got %v", args)
	}
}
