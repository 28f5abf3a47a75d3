package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agentlab/agent"
)

const assistantInstructions = "You are a concise, helpful assistant."

var chatCmd = &cobra.Command{
	Use:   "chat [prompt]",
	Short: "Single-turn request and buffered response",
	Long: `Sends one prompt and prints the complete response along with the token
usage the provider reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChatLab,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChatLab(cmd *cobra.Command, args []string) error {
	_, client, err := setup()
	if err != nil {
		return err
	}

	a := agent.New("assistant", assistantInstructions, client)

	resp, err := a.Ask(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Fprintln(ioOut, resp.Text)
	if resp.Usage.TotalTokens > 0 {
		fmt.Fprintf(ioOut, "\n[%s: %d prompt + %d completion = %d tokens]\n",
			client.GetModel(),
			resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
	}

	return nil
}
