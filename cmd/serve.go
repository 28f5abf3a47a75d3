package cmd

import (
	"github.com/spf13/cobra"

	"agentlab/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the tool registry as an MCP stdio server",
	Long: `Serves the built-in tools over the Model Context Protocol on
stdin/stdout. Point an MCP client at this command to call the same tools the
'tools' lab uses in-process:

  {"mcpServers": {"agentlab": {"command": "agentlab", "args": ["serve"]}}}`,
	RunE: runServeLab,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServeLab(cmd *cobra.Command, args []string) error {
	registry := mcp.NewRegistry()
	if err := mcp.RegisterBuiltins(registry); err != nil {
		return err
	}
	return mcp.ServeStdio(registry, "agentlab", version)
}
