package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agentlab/agent"
)

var streamCmd = &cobra.Command{
	Use:   "stream [prompt]",
	Short: "Print response fragments as they arrive",
	Long: `Sends one prompt and prints each fragment the moment the provider
delivers it, instead of waiting for the complete response.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStreamLab,
}

func init() {
	rootCmd.AddCommand(streamCmd)
}

func runStreamLab(cmd *cobra.Command, args []string) error {
	_, client, err := setup()
	if err != nil {
		return err
	}

	a := agent.New("narrator", assistantInstructions, client)

	fragments, err := a.RunStream(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	for fragment := range fragments {
		if fragment.Err != nil {
			fmt.Fprintln(ioOut)
			return fragment.Err
		}
		fmt.Fprint(ioOut, fragment.Text)
	}
	fmt.Fprintln(ioOut)

	return nil
}
