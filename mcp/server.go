package mcp

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer wraps the registry in an MCP server so any MCP-capable host can
// call the same tools the labs execute in-process.
func NewServer(reg *Registry, name, version string) *server.MCPServer {
	s := server.NewMCPServer(name, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, def := range reg.Definitions() {
		s.AddTool(def, toolHandler(reg, def.Name))
	}

	return s
}

// ServeStdio runs the MCP server over stdin/stdout until the host closes
// the transport.
func ServeStdio(reg *Registry, name, version string) error {
	return server.ServeStdio(NewServer(reg, name, version))
}

func toolHandler(reg *Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
		result, err := reg.Call(ctx, name, request.GetArguments())
		if err != nil {
			return mcptypes.NewToolResultError(err.Error()), nil
		}
		return mcptypes.NewToolResultText(result), nil
	}
}
