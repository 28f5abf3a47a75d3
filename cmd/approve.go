package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agentlab/agent"
	"agentlab/mcp"
)

var approveCmd = &cobra.Command{
	Use:   "approve [prompt]",
	Short: "Tool calling with human approval of every call",
	Long: `Same as 'tools', but each tool call the model requests is shown and must
be approved before it runs. Denying a call aborts the run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApproveLab,
}

func init() {
	rootCmd.AddCommand(approveCmd)
}

func runApproveLab(cmd *cobra.Command, args []string) error {
	_, client, err := setup()
	if err != nil {
		return err
	}

	registry := mcp.NewRegistry()
	if err := mcp.RegisterBuiltins(registry); err != nil {
		return err
	}

	approval := &agent.ApprovalHook{In: ioIn, Out: ioOut}
	a := agent.New("supervised", assistantInstructions, client,
		agent.WithTools(registry),
		agent.WithHook(approval),
	)

	result, err := a.Run(cmd.Context(), strings.Join(args, " "))
	if errors.Is(err, agent.ErrToolDenied) {
		fmt.Fprintln(ioOut, "Tool call denied; run aborted.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(ioOut, result.Output)
	return nil
}
