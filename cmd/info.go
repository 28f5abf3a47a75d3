package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"agentlab/config"
	"agentlab/ollama"
	"agentlab/provider"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the resolved provider and model",
	Long: `Resolves the configuration the same way every other lab does and prints
which provider and model would serve the requests, without making one.`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	providerCfg, err := provider.FromConfig(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(ioOut, "Provider: %s\n", provider.Describe(providerCfg))
	if err := cfg.Validate(); err != nil {
		var issues config.ValidationErrors
		if errors.As(err, &issues) {
			for _, issue := range issues {
				fmt.Fprintf(ioOut, "Config:   %s\n", issue.Error())
			}
		} else {
			fmt.Fprintf(ioOut, "Config:   %v\n", err)
		}
	}
	fmt.Fprintf(ioOut, "Data dir: %s\n", cfg.DataDir())

	// For a local backend we can also say what is actually installed.
	if providerCfg.Type == provider.TypeOllama {
		listOllamaModels(cmd.Context(), providerCfg)
	}

	return nil
}

func listOllamaModels(ctx context.Context, providerCfg provider.Config) {
	client, err := ollama.NewClient(providerCfg.BaseURL, providerCfg.Model)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	models, err := client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(ioOut, "Ollama:   unreachable (%v)\n", err)
		return
	}

	fmt.Fprintf(ioOut, "Installed models:\n")
	for _, m := range models {
		tag := ""
		if ollama.ModelSupportsToolCalling(m.Name) {
			tag = "  [tools]"
		}
		fmt.Fprintf(ioOut, "  %s%s\n", m.Name, tag)
	}
}
