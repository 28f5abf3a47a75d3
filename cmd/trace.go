package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agentlab/agent"
	"agentlab/logging"
	"agentlab/mcp"
)

var traceCmd = &cobra.Command{
	Use:   "trace [prompt]",
	Short: "Run with structured logging of every lifecycle event",
	Long: `Same as 'tools', with a trace hook attached: run start and end, each
tool call with its arguments and duration, and token usage are logged as
structured events. Set AGENTLAB_DEBUG=1 for human-readable development logs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTraceLab,
}

func init() {
	rootCmd.AddCommand(traceCmd)
}

func runTraceLab(cmd *cobra.Command, args []string) error {
	_, client, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	registry := mcp.NewRegistry()
	if err := mcp.RegisterBuiltins(registry); err != nil {
		return err
	}

	tracer := &agent.TraceHook{Logger: logging.With(
		zap.String("lab", "trace"),
		zap.String("model", client.GetModel()),
	)}

	a := agent.New("traced", assistantInstructions, client,
		agent.WithTools(registry),
		agent.WithHook(tracer),
	)

	result, err := a.Run(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Fprintln(ioOut, result.Output)
	return nil
}
