package mcp

import (
	"testing"

	"github.com/ollama/ollama/api"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

func TestToOllamaTools(t *testing.T) {
	tests := []struct {
		name     string
		input    []mcptypes.Tool
		expected int // expected tool count
		validate func(t *testing.T, result []api.Tool)
	}{
		{
			name:     "empty tools",
			input:    []mcptypes.Tool{},
			expected: 0,
		},
		{
			name: "single simple tool",
			input: []mcptypes.Tool{
				{
					Name:        "get_weather",
					Description: "Get current weather",
					InputSchema: mcptypes.ToolInputSchema{
						Type:       "object",
						Properties: map[string]any{},
						Required:   []string{},
					},
				},
			},
			expected: 1,
			validate: func(t *testing.T, result []api.Tool) {
				if result[0].Type != "function" {
					t.Errorf("expected type 'function', got %q", result[0].Type)
				}
				if result[0].Function.Name != "get_weather" {
					t.Errorf("expected name 'get_weather', got %q", result[0].Function.Name)
				}
				if result[0].Function.Description != "Get current weather" {
					t.Errorf("expected description 'Get current weather', got %q", result[0].Function.Description)
				}
			},
		},
		{
			name: "tool with properties",
			input: []mcptypes.Tool{
				{
					Name:        "calculate",
					Description: "Perform calculation",
					InputSchema: mcptypes.ToolInputSchema{
						Type: "object",
						Properties: map[string]any{
							"operation": map[string]any{
								"type":        "string",
								"description": "The operation to perform",
								"enum":        []any{"add", "subtract", "multiply", "divide"},
							},
							"a": map[string]any{
								"type":        "number",
								"description": "First operand",
							},
							"b": map[string]any{
								"type":        "number",
								"description": "Second operand",
							},
						},
						Required: []string{"operation", "a", "b"},
					},
				},
			},
			expected: 1,
			validate: func(t *testing.T, result []api.Tool) {
				params := result[0].Function.Parameters
				if params.Type != "object" {
					t.Errorf("expected type 'object', got %q", params.Type)
				}
				if len(params.Required) != 3 {
					t.Errorf("expected 3 required fields, got %d", len(params.Required))
				}
				if len(params.Properties) != 3 {
					t.Errorf("expected 3 properties, got %d", len(params.Properties))
				}

				opProp, ok := params.Properties["operation"]
				if !ok {
					t.Fatal("operation property not found")
				}
				if opProp.Description != "The operation to perform" {
					t.Errorf("operation description mismatch")
				}
				if len(opProp.Enum) != 4 {
					t.Errorf("expected 4 enum values, got %d", len(opProp.Enum))
				}
			},
		},
		{
			name: "multiple tools keep order",
			input: []mcptypes.Tool{
				{
					Name:        "tool1",
					Description: "First tool",
					InputSchema: mcptypes.ToolInputSchema{Type: "object"},
				},
				{
					Name:        "tool2",
					Description: "Second tool",
					InputSchema: mcptypes.ToolInputSchema{Type: "object"},
				},
			},
			expected: 2,
			validate: func(t *testing.T, result []api.Tool) {
				if result[0].Function.Name != "tool1" {
					t.Errorf("first tool name mismatch")
				}
				if result[1].Function.Name != "tool2" {
					t.Errorf("second tool name mismatch")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToOllamaTools(tt.input)

			if len(result) != tt.expected {
				t.Fatalf("expected %d tools, got %d", tt.expected, len(result))
			}

			if tt.validate != nil {
				tt.validate(t, result)
			}
		})
	}
}

func TestToOllamaProperty(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		validate func(t *testing.T, result api.ToolProperty)
	}{
		{
			name: "string type",
			input: map[string]any{
				"type":        "string",
				"description": "A string property",
			},
			validate: func(t *testing.T, result api.ToolProperty) {
				if len(result.Type) != 1 || result.Type[0] != "string" {
					t.Errorf("expected type [string], got %v", result.Type)
				}
				if result.Description != "A string property" {
					t.Errorf("description mismatch")
				}
			},
		},
		{
			name: "array of type names",
			input: map[string]any{
				"type":        []any{"string", "number"},
				"description": "Multi-type property",
			},
			validate: func(t *testing.T, result api.ToolProperty) {
				if len(result.Type) != 2 {
					t.Errorf("expected 2 types, got %d", len(result.Type))
				}
			},
		},
		{
			name: "property with enum",
			input: map[string]any{
				"type": "string",
				"enum": []any{"option1", "option2", "option3"},
			},
			validate: func(t *testing.T, result api.ToolProperty) {
				if len(result.Enum) != 3 {
					t.Errorf("expected 3 enum values, got %d", len(result.Enum))
				}
			},
		},
		{
			name: "array property with items",
			input: map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
			},
			validate: func(t *testing.T, result api.ToolProperty) {
				if result.Items == nil {
					t.Error("expected items to be set")
				}
			},
		},
		{
			name: "property with anyOf",
			input: map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string"},
					map[string]any{"type": "number"},
				},
			},
			validate: func(t *testing.T, result api.ToolProperty) {
				if len(result.AnyOf) != 2 {
					t.Errorf("expected 2 anyOf options, got %d", len(result.AnyOf))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toOllamaProperty(tt.input)
			if tt.validate != nil {
				tt.validate(t, result)
			}
		})
	}
}

func TestToOpenAITools(t *testing.T) {
	tools := []mcptypes.Tool{
		{
			Name:        "get_weather",
			Description: "Get current weather",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"city": map[string]any{"type": "string"},
				},
				Required: []string{"city"},
			},
		},
	}

	result := ToOpenAITools(tools)
	if len(result) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(result))
	}

	fn := result[0].OfFunction
	if fn == nil {
		t.Fatal("expected function tool variant")
	}
	if fn.Function.Name != "get_weather" {
		t.Errorf("name = %q, want get_weather", fn.Function.Name)
	}
	params := fn.Function.Parameters
	if params["type"] != "object" {
		t.Errorf("parameters type = %v, want object", params["type"])
	}
	required, ok := params["required"].([]string)
	if !ok || len(required) != 1 || required[0] != "city" {
		t.Errorf("required = %v, want [city]", params["required"])
	}

	if got := ToOpenAITools(nil); got != nil {
		t.Errorf("nil input: got %v, want nil", got)
	}
}

func TestToAnthropicTools(t *testing.T) {
	tools := []mcptypes.Tool{
		{
			Name:        "calculate",
			Description: "Perform calculation",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"a": map[string]any{"type": "number"},
					"b": map[string]any{"type": "number"},
				},
				Required: []string{"a", "b"},
			},
		},
	}

	result := ToAnthropicTools(tools)
	if len(result) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(result))
	}

	tool := result[0].OfTool
	if tool == nil {
		t.Fatal("expected plain tool variant")
	}
	if tool.Name != "calculate" {
		t.Errorf("name = %q, want calculate", tool.Name)
	}
	if !tool.Description.Valid() || tool.Description.Value != "Perform calculation" {
		t.Errorf("description = %+v", tool.Description)
	}
	if len(tool.InputSchema.Required) != 2 {
		t.Errorf("expected 2 required fields, got %d", len(tool.InputSchema.Required))
	}

	if got := ToAnthropicTools(nil); got != nil {
		t.Errorf("nil input: got %v, want nil", got)
	}
}
