package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"agentlab/storage"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List, search, and export saved threads",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved threads, newest first",
	RunE:  runSessionsList,
}

var sessionsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search message content across all threads",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsSearch,
}

var sessionsExportCmd = &cobra.Command{
	Use:   "export [thread-id] [path]",
	Short: "Export a thread snapshot to a JSON file",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionsExport,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete [thread-id]",
	Short: "Delete a saved thread",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd, sessionsSearchCmd, sessionsExportCmd, sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func openThreadStorage() (*storage.ThreadStorage, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	store, err := storage.NewThreadStorage(cfg.DataDir())
	if err != nil {
		return nil, "", fmt.Errorf("opening thread storage: %w", err)
	}
	return store, cfg.DataDir(), nil
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	store, _, err := openThreadStorage()
	if err != nil {
		return err
	}

	threads, err := store.List()
	if err != nil {
		return err
	}
	if len(threads) == 0 {
		fmt.Fprintln(ioOut, "No saved threads.")
		return nil
	}

	for _, meta := range threads {
		fmt.Fprintf(ioOut, "%s  %-30s  %s/%s  %d messages  %s\n",
			meta.ID, meta.Name, meta.Provider, meta.Model,
			meta.MessageCount, meta.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runSessionsSearch(cmd *cobra.Command, args []string) error {
	store, dataDir, err := openThreadStorage()
	if err != nil {
		return err
	}

	index, err := storage.OpenIndex(dataDir)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer index.Close()

	// The index is cheap to rebuild and snapshots are the source of
	// truth, so refresh it before every search.
	if err := index.Rebuild(store); err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	matches, err := index.Search(args[0])
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintf(ioOut, "No matches for %q.\n", args[0])
		return nil
	}

	for _, match := range matches {
		fmt.Fprintf(ioOut, "%s (%s) #%d [%s]: %s\n",
			match.ThreadName, match.ThreadID, match.MessageIndex, match.Role, match.Preview)
	}
	return nil
}

func runSessionsExport(cmd *cobra.Command, args []string) error {
	store, _, err := openThreadStorage()
	if err != nil {
		return err
	}

	if err := store.ExportToJSON(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(ioOut, "Exported thread %s to %s\n", args[0], args[1])
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	store, _, err := openThreadStorage()
	if err != nil {
		return err
	}

	if err := store.Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(ioOut, "Deleted thread %s\n", args[0])
	return nil
}
