package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

func testTool(name string) mcptypes.Tool {
	return mcptypes.NewTool(name, mcptypes.WithDescription("test tool"))
}

func TestRegistryRegisterAndCall(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register(testTool("greet"), func(_ context.Context, args map[string]any) (string, error) {
		name, _ := args["name"].(string)
		return "hello " + name, nil
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := registry.Call(context.Background(), "greet", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if result != "hello ada" {
		t.Errorf("Call() = %q, want %q", result, "hello ada")
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	registry := NewRegistry()
	handler := func(context.Context, map[string]any) (string, error) { return "", nil }

	if err := registry.Register(testTool("dup"), handler); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	err := registry.Register(testTool("dup"), handler)
	if err == nil {
		t.Fatal("second Register() did not fail")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Errorf("error = %v, want mention of already registered", err)
	}
}

func TestRegistryRejectsInvalidRegistrations(t *testing.T) {
	registry := NewRegistry()
	handler := func(context.Context, map[string]any) (string, error) { return "", nil }

	if err := registry.Register(mcptypes.Tool{}, handler); err == nil {
		t.Error("Register() accepted empty tool name")
	}
	if err := registry.Register(testTool("no_handler"), nil); err == nil {
		t.Error("Register() accepted nil handler")
	}
}

func TestRegistryUnknownTool(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Call(context.Background(), "missing", nil)
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("Call() error = %v, want ErrUnknownTool", err)
	}
}

func TestRegistryHandlerErrorWrapsToolName(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(testTool("broken"), func(context.Context, map[string]any) (string, error) {
		return "", errors.New("boom")
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := registry.Call(context.Background(), "broken", nil)
	if err == nil || !strings.Contains(err.Error(), "broken") {
		t.Errorf("Call() error = %v, want tool name in message", err)
	}
}

func TestRegistryDefinitionsOrder(t *testing.T) {
	registry := NewRegistry()
	handler := func(context.Context, map[string]any) (string, error) { return "", nil }

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if err := registry.Register(testTool(name), handler); err != nil {
			t.Fatalf("Register(%q) error = %v", name, err)
		}
	}

	defs := registry.Definitions()
	if len(defs) != 3 {
		t.Fatalf("Definitions() returned %d tools, want 3", len(defs))
	}
	want := []string{"charlie", "alpha", "bravo"}
	for i, def := range defs {
		if def.Name != want[i] {
			t.Errorf("Definitions()[%d] = %q, want %q", i, def.Name, want[i])
		}
	}
	if registry.Len() != 3 {
		t.Errorf("Len() = %d, want 3", registry.Len())
	}
}
