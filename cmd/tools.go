package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agentlab/agent"
	"agentlab/mcp"
	"agentlab/ollama"
	"agentlab/provider"
)

var toolsCmd = &cobra.Command{
	Use:   "tools [prompt]",
	Short: "Function calling against the local tool registry",
	Long: `Offers the built-in demo tools (current_time, get_weather, calculate)
to the model. When the model requests a tool, the call is executed locally
and the result is fed back so the model can answer with it.

Try: agentlab tools "what's the weather in Kingston right now?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runToolsLab,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runToolsLab(cmd *cobra.Command, args []string) error {
	cfg, client, err := setup()
	if err != nil {
		return err
	}

	warnIfNoToolSupport(cfg.AI.Provider, client.GetModel())

	registry := mcp.NewRegistry()
	if err := mcp.RegisterBuiltins(registry); err != nil {
		return err
	}

	a := agent.New("toolsmith", assistantInstructions, client, agent.WithTools(registry))

	result, err := a.Run(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	for _, trace := range result.ToolCalls {
		fmt.Fprintf(ioOut, "[tool %s -> %s]\n", trace.Name, trace.Result)
	}
	fmt.Fprintln(ioOut, result.Output)

	return nil
}

func warnIfNoToolSupport(providerSelector, modelName string) {
	providerType, err := provider.ParseType(providerSelector)
	if err != nil || providerType != provider.TypeOllama {
		return
	}
	if !ollama.ModelSupportsToolCalling(modelName) {
		fmt.Fprintf(ioOut, "Warning: model %q is not known to support tool calling; the model may answer without using tools.\n", modelName)
	}
}
