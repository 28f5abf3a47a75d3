package mcp

import (
	"context"
	"fmt"
	"sync"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// ErrUnknownTool reports a call to a tool that was never registered.
var ErrUnknownTool = fmt.Errorf("unknown tool")

// Handler executes a tool call and returns its textual result.
type Handler func(ctx context.Context, args map[string]any) (string, error)

type registeredTool struct {
	def     mcptypes.Tool
	handler Handler
}

// Registry holds the local tools a lab can offer to the model. The same
// registry backs in-process tool execution and the MCP server exposure.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]registeredTool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]registeredTool),
	}
}

// Register adds a tool definition with its handler. Registering the same
// name twice is an error rather than a silent replace.
func (r *Registry) Register(def mcptypes.Tool, handler Handler) error {
	if def.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if handler == nil {
		return fmt.Errorf("tool %q: handler is required", def.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("tool %q already registered", def.Name)
	}

	r.tools[def.Name] = registeredTool{def: def, handler: handler}
	r.order = append(r.order, def.Name)
	return nil
}

// Definitions returns the tool definitions in registration order, ready to
// hand to a ChatClient.
func (r *Registry) Definitions() []mcptypes.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]mcptypes.Tool, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].def)
	}
	return defs
}

// Call executes the named tool with the given arguments.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	r.mu.RLock()
	tool, exists := r.tools[name]
	r.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}

	result, err := tool.handler(ctx, args)
	if err != nil {
		return "", fmt.Errorf("tool %q failed: %w", name, err)
	}
	return result, nil
}

// Len reports the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
