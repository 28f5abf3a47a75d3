package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agentlab/agent"
	"agentlab/config"
	"agentlab/provider"
	"agentlab/storage"
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Multi-turn conversation with accumulated context",
	Long: `Starts an interactive session. Every turn is sent together with the
previous turns, so the model can refer back to earlier messages.

The conversation is saved as a thread on exit; continue it later with
'agentlab resume'. Type 'exit' or press Ctrl+D to end the session.`,
	RunE: runMemoryLab,
}

func init() {
	rootCmd.AddCommand(memoryCmd)
}

func runMemoryLab(cmd *cobra.Command, args []string) error {
	cfg, client, err := setup()
	if err != nil {
		return err
	}

	a := agent.New("companion", assistantInstructions, client)

	fmt.Fprintln(ioOut, "Multi-turn session. Type 'exit' to end.")

	scanner := bufio.NewScanner(ioIn)
	for {
		fmt.Fprint(ioOut, "> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		fragments, err := a.RunStream(cmd.Context(), input)
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
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return saveThread(cfg, a, client.GetModel())
}

// saveThread persists the agent's conversation and marks it current so
// 'resume' picks it up without an ID.
func saveThread(cfg *config.Config, a *agent.Agent, modelName string) error {
	messages := a.Messages()
	if len(messages) == 0 {
		return nil
	}

	store, err := storage.NewThreadStorage(cfg.DataDir())
	if err != nil {
		return fmt.Errorf("opening thread storage: %w", err)
	}

	thread := &storage.Thread{
		Provider: providerLabel(cfg),
		Model:    modelName,
	}
	for _, msg := range messages {
		thread.Append(msg.Role, msg.Content)
	}

	if err := store.Save(thread); err != nil {
		return fmt.Errorf("saving thread: %w", err)
	}
	if err := store.SaveCurrentThreadID(thread.ID); err != nil {
		return fmt.Errorf("marking current thread: %w", err)
	}

	fmt.Fprintf(ioOut, "Saved thread %s (%q)\n", thread.ID, thread.Name)
	return nil
}

func providerLabel(cfg *config.Config) string {
	providerType, err := provider.ParseType(cfg.AI.Provider)
	if err != nil {
		return ""
	}
	return string(providerType)
}
