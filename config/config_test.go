package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AGENTLAB_CONFIG", "AGENTLAB_PROVIDER", "AGENTLAB_OPENAI_API_KEY",
		"OPENAI_API_KEY", "AGENTLAB_OPENAI_MODEL", "AGENTLAB_OLLAMA_HOST",
		"AGENTLAB_OLLAMA_MODEL", "OPENROUTER_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("AGENTLAB_DATA_DIR", t.TempDir())
}

func TestLoadFromPath(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[ai]
provider = "Ollama"

[ollama]
endpoint = "http://localhost:11434"
model = "llama3.3:70b"
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AI.Provider != "Ollama" {
		t.Errorf("provider = %q, want Ollama", cfg.AI.Provider)
	}
	if cfg.Ollama.Model != "llama3.3:70b" {
		t.Errorf("model = %q, want llama3.3:70b", cfg.Ollama.Model)
	}
}

func TestLoadMissingFileIsFatal(t *testing.T) {
	clearEnv(t)

	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadMissingFileWithEnvProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("AGENTLAB_PROVIDER", "ollama")
	t.Setenv("AGENTLAB_OLLAMA_MODEL", "llama3.1")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AI.Provider != "ollama" {
		t.Errorf("provider = %q, want ollama", cfg.AI.Provider)
	}
	if cfg.Ollama.Model != "llama3.1" {
		t.Errorf("model = %q, want llama3.1", cfg.Ollama.Model)
	}
	// defaults still apply
	if cfg.Ollama.Endpoint != "http://localhost:11434" {
		t.Errorf("endpoint = %q, want local default", cfg.Ollama.Endpoint)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[ai]
provider = "openai"

[openai]
api_key = "file-key"
model = "gpt-4o"
`)
	t.Setenv("AGENTLAB_OPENAI_API_KEY", "env-key")
	t.Setenv("AGENTLAB_OPENAI_MODEL", "gpt-4.1")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenAI.APIKey != "env-key" {
		t.Errorf("api key = %q, want env-key", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4.1" {
		t.Errorf("model = %q, want gpt-4.1", cfg.OpenAI.Model)
	}
}

func TestFallbackOpenAIKeyDoesNotClobberFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[openai]
api_key = "file-key"
`)
	t.Setenv("OPENAI_API_KEY", "ambient-key")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenAI.APIKey != "file-key" {
		t.Errorf("api key = %q, want file-key", cfg.OpenAI.APIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cfg *Config)
		wantKeys []string
	}{
		{
			name:     "openai missing key",
			mutate:   func(cfg *Config) { cfg.AI.Provider = "openai" },
			wantKeys: []string{"openai.api_key"},
		},
		{
			name: "openai model optional",
			mutate: func(cfg *Config) {
				cfg.AI.Provider = "OpenAI"
				cfg.OpenAI.APIKey = "key"
			},
		},
		{
			name: "absent selector validates openai path",
			mutate: func(cfg *Config) {
				cfg.OpenAI.APIKey = "key"
			},
		},
		{
			name: "ollama missing model",
			mutate: func(cfg *Config) {
				cfg.AI.Provider = "ollama"
				cfg.Ollama.Endpoint = "http://localhost:11434"
			},
			wantKeys: []string{"ollama.model"},
		},
		{
			name: "ollama bad endpoint and missing model reported together",
			mutate: func(cfg *Config) {
				cfg.AI.Provider = "ollama"
				cfg.Ollama.Endpoint = "not a url"
			},
			wantKeys: []string{"ollama.model", "ollama.endpoint"},
		},
		{
			name:     "unsupported provider",
			mutate:   func(cfg *Config) { cfg.AI.Provider = "gemini" },
			wantKeys: []string{"ai.provider"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.wantKeys) == 0 {
				if err != nil {
					t.Fatalf("unexpected validation error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected validation errors")
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			for _, key := range tt.wantKeys {
				found := false
				for _, verr := range verrs {
					if verr.Key == key {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for key %q in %v", key, verrs)
				}
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Key: "openai.api_key", Reason: "required"},
	}
	if !strings.Contains(errs.Error(), "openai.api_key: required") {
		t.Errorf("unexpected message: %q", errs.Error())
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	if got := ExpandPath("~/data"); got != "/home/tester/data" {
		t.Errorf("ExpandPath(~/data) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
}
