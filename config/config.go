// Package config loads the lab configuration from a TOML file with
// environment-variable overrides. The file must exist; the labs talk to
// remote services and cannot guess credentials. The one exception is a
// fully env-driven run, where AGENTLAB_PROVIDER selects the backend and
// the per-provider variables supply the rest.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrNotFound reports a missing configuration file.
var ErrNotFound = errors.New("config file not found")

type AIConfig struct {
	// Provider selects the backend: openai, ollama, openrouter, anthropic.
	// Matching is case-insensitive; empty defaults to OpenAI.
	Provider string `toml:"provider"`
}

type OpenAIConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

type OllamaConfig struct {
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
}

type OpenRouterConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

type AnthropicConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

type Config struct {
	AI            AIConfig         `toml:"ai"`
	OpenAI        OpenAIConfig     `toml:"openai"`
	Ollama        OllamaConfig     `toml:"ollama"`
	OpenRouter    OpenRouterConfig `toml:"openrouter"`
	Anthropic     AnthropicConfig  `toml:"anthropic"`
	DataDirectory string           `toml:"data_directory"`
}

// Load reads the configuration from the default path (or AGENTLAB_CONFIG),
// applies env overrides, and ensures the data directory exists.
//
// A missing file is fatal unless AGENTLAB_PROVIDER is set, in which case
// the configuration is assembled entirely from the environment.
func Load() (*Config, error) {
	path := os.Getenv("AGENTLAB_CONFIG")
	if path == "" {
		path = GetConfigFilePath()
	}
	return LoadFromPath(path)
}

// LoadFromPath is Load with an explicit file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := defaultConfig()

	if !FileExists(path) {
		if os.Getenv("AGENTLAB_PROVIDER") == "" {
			return nil, fmt.Errorf("%w: %s (set AGENTLAB_CONFIG or AGENTLAB_PROVIDER)", ErrNotFound, path)
		}
	} else {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Ollama: OllamaConfig{
			Endpoint: "http://localhost:11434",
		},
		DataDirectory: GetDefaultDataDir(),
	}
}

// DataDir returns the expanded data directory path.
func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("AGENTLAB_PROVIDER"); v != "" {
		c.AI.Provider = v
	}
	if v := os.Getenv("AGENTLAB_OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" && c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("AGENTLAB_OPENAI_MODEL"); v != "" {
		c.OpenAI.Model = v
	}
	if v := os.Getenv("AGENTLAB_OLLAMA_HOST"); v != "" {
		c.Ollama.Endpoint = v
	}
	if v := os.Getenv("AGENTLAB_OLLAMA_MODEL"); v != "" {
		c.Ollama.Model = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" && c.OpenRouter.APIKey == "" {
		c.OpenRouter.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && c.Anthropic.APIKey == "" {
		c.Anthropic.APIKey = v
	}
	if v := os.Getenv("AGENTLAB_DATA_DIR"); v != "" {
		c.DataDirectory = v
	}
}

// Debug reports whether debug logging was requested.
func Debug() bool {
	v := os.Getenv("AGENTLAB_DEBUG")
	return v == "true" || v == "1"
}
