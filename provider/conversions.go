package provider

import (
	"encoding/json"

	"agentlab/model"

	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

// ToOllamaMessages converts provider-agnostic messages to Ollama's format.
// Timestamps are dropped; the wire protocol has no field for them.
func ToOllamaMessages(messages []model.Message) []api.Message {
	result := make([]api.Message, len(messages))
	for i, msg := range messages {
		result[i] = api.Message{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return result
}

// ToOpenAIMessages converts provider-agnostic messages to the OpenAI chat
// completion format. Tool results ride as user messages; the labs feed tool
// output back as plain conversation turns.
func ToOpenAIMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			result = append(result, openai.SystemMessage(msg.Content))
		case "assistant":
			result = append(result, openai.AssistantMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}
	return result
}

// FromOllamaToolCalls converts Ollama tool calls to the provider-agnostic
// form. Returns nil for empty input, matching the API's nil semantics.
func FromOllamaToolCalls(calls []api.ToolCall) []model.ToolCall {
	if len(calls) == 0 {
		return nil
	}

	result := make([]model.ToolCall, len(calls))
	for i, call := range calls {
		result[i] = model.ToolCall{
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		}
	}
	return result
}

// ParseToolArguments parses a JSON arguments payload into a map. OpenAI and
// OpenRouter deliver tool arguments as a JSON string; a malformed payload
// yields an empty map rather than an error, since the tool handler will
// produce the real diagnostic for missing arguments.
func ParseToolArguments(argsJSON string) map[string]any {
	var args map[string]any
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return make(map[string]any)
	}
	return args
}
