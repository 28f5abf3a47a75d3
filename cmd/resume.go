package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agentlab/agent"
	"agentlab/storage"
)

var resumeThreadID string

var resumeCmd = &cobra.Command{
	Use:   "resume [prompt]",
	Short: "Continue a saved thread with full prior context",
	Long: `Loads a saved thread, replays its messages into a fresh agent, sends the
prompt as the next turn, and saves the extended thread back. Without --thread
the most recently saved thread is used.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResumeLab,
}

func init() {
	resumeCmd.Flags().StringVar(&resumeThreadID, "thread", "", "thread ID to resume (default: last saved)")
	rootCmd.AddCommand(resumeCmd)
}

func runResumeLab(cmd *cobra.Command, args []string) error {
	cfg, client, err := setup()
	if err != nil {
		return err
	}

	store, err := storage.NewThreadStorage(cfg.DataDir())
	if err != nil {
		return fmt.Errorf("opening thread storage: %w", err)
	}

	threadID := resumeThreadID
	if threadID == "" {
		threadID, err = store.LoadCurrentThreadID()
		if err != nil {
			return fmt.Errorf("no thread to resume; run 'agentlab memory' first or pass --thread: %w", err)
		}
	}

	thread, err := store.Load(threadID)
	if err != nil {
		return fmt.Errorf("loading thread %s: %w", threadID, err)
	}

	if thread.Model != "" {
		client.SetModel(thread.Model)
	}

	a := agent.New("companion", assistantInstructions, client)
	a.LoadMessages(thread.ModelMessages())

	fmt.Fprintf(ioOut, "Resuming %q (%d prior messages)\n", thread.Name, len(thread.Messages))

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

	// Persist the two new turns on the same thread.
	prior := len(thread.Messages)
	for _, msg := range a.Messages()[prior:] {
		thread.Append(msg.Role, msg.Content)
	}
	if err := store.Save(thread); err != nil {
		return fmt.Errorf("saving thread: %w", err)
	}
	return store.SaveCurrentThreadID(thread.ID)
}
