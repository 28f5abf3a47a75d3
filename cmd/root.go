// Package cmd wires the labs together as cobra subcommands. Each lab
// resolves the configured provider, wraps it in an agent, makes one or two
// requests, and prints the result.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"agentlab/config"
	"agentlab/model"
	"agentlab/provider"
)

var configFlag string

// Package-level function variables for testability.
// Tests override these to avoid real provider calls and real stdio.
var (
	resolveClient = provider.Resolve
	loadConfig    = func() (*config.Config, error) {
		if configFlag != "" {
			return config.LoadFromPath(configFlag)
		}
		return config.Load()
	}
	ioIn  io.Reader = os.Stdin
	ioOut io.Writer = os.Stdout
)

var rootCmd = &cobra.Command{
	Use:   "agentlab",
	Short: "Console labs for a provider-agnostic LLM agent stack",
	Long: `agentlab is a set of small console programs, one per subcommand, that
demonstrate a provider-agnostic chat client with optional layers on top:
conversation memory, tool calling, human approval, structured output,
multi-agent composition, MCP exposure, tracing, and thread persistence.

Providers are selected in the config file or via AGENTLAB_PROVIDER:
openai (default), ollama, openrouter, or anthropic.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")

	// Optional .env next to the binary; absence is not an error.
	_ = gotenv.Load()
}

func Execute() error {
	return rootCmd.Execute()
}

// setup loads the config and resolves the configured chat client. Almost
// every lab starts here.
func setup() (*config.Config, model.ChatClient, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	client, err := resolveClient(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving provider: %w", err)
	}
	return cfg, client, nil
}
