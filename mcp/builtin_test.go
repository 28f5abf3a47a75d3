package mcp

import (
	"context"
	"strings"
	"testing"
)

func builtinsRegistry(t *testing.T) *Registry {
	t.Helper()
	registry := NewRegistry()
	if err := RegisterBuiltins(registry); err != nil {
		t.Fatalf("RegisterBuiltins() error = %v", err)
	}
	return registry
}

func TestRegisterBuiltins(t *testing.T) {
	registry := builtinsRegistry(t)

	if registry.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", registry.Len())
	}
	want := []string{"current_time", "get_weather", "calculate"}
	for i, def := range registry.Definitions() {
		if def.Name != want[i] {
			t.Errorf("Definitions()[%d] = %q, want %q", i, def.Name, want[i])
		}
	}
}

func TestCurrentTimeTool(t *testing.T) {
	registry := builtinsRegistry(t)
	ctx := context.Background()

	result, err := registry.Call(ctx, "current_time", map[string]any{})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if result == "" {
		t.Error("empty time result")
	}

	result, err = registry.Call(ctx, "current_time", map[string]any{"timezone": "UTC"})
	if err != nil {
		t.Fatalf("Call() with timezone error = %v", err)
	}
	if !strings.Contains(result, "UTC") {
		t.Errorf("result %q does not carry the requested timezone", result)
	}

	if _, err := registry.Call(ctx, "current_time", map[string]any{"timezone": "Mars/Olympus"}); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func TestGetWeatherTool(t *testing.T) {
	registry := builtinsRegistry(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		args    map[string]any
		want    string
		wantErr bool
	}{
		{name: "known city", args: map[string]any{"city": "Kingston"}, want: "sunny"},
		{name: "case insensitive", args: map[string]any{"city": "MONTEGO BAY"}, want: "scattered clouds"},
		{name: "unknown city gets fallback", args: map[string]any{"city": "Atlantis"}, want: "partly cloudy"},
		{name: "missing city", args: map[string]any{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := registry.Call(ctx, "get_weather", tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Call() error = %v", err)
			}
			if !strings.Contains(result, tt.want) {
				t.Errorf("result %q does not contain %q", result, tt.want)
			}
		})
	}
}

func TestCalculateTool(t *testing.T) {
	registry := builtinsRegistry(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		args    map[string]any
		want    string
		wantErr bool
	}{
		{name: "add", args: map[string]any{"operation": "add", "a": float64(5), "b": float64(3)}, want: "8"},
		{name: "subtract", args: map[string]any{"operation": "subtract", "a": float64(5), "b": float64(3)}, want: "2"},
		{name: "multiply", args: map[string]any{"operation": "multiply", "a": float64(4), "b": float64(2.5)}, want: "10"},
		{name: "divide", args: map[string]any{"operation": "divide", "a": float64(7), "b": float64(2)}, want: "3.5"},
		{name: "integer args", args: map[string]any{"operation": "add", "a": 2, "b": 2}, want: "4"},
		{name: "divide by zero", args: map[string]any{"operation": "divide", "a": float64(1), "b": float64(0)}, wantErr: true},
		{name: "unknown operation", args: map[string]any{"operation": "modulo", "a": float64(1), "b": float64(2)}, wantErr: true},
		{name: "non-numeric operand", args: map[string]any{"operation": "add", "a": "one", "b": float64(2)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := registry.Call(ctx, "calculate", tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Call() error = %v", err)
			}
			if result != tt.want {
				t.Errorf("Call() = %q, want %q", result, tt.want)
			}
		})
	}
}
