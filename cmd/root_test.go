package cmd

import (
	"testing"

	"agentlab/config"
	"agentlab/model"
	"agentlab/provider/testutil"
)

// saveCmdVars saves the package-level function vars and returns a restore
// function.
func saveCmdVars(t *testing.T) func() {
	t.Helper()
	origResolve := resolveClient
	origLoad := loadConfig
	origIoIn := ioIn
	origIoOut := ioOut
	return func() {
		resolveClient = origResolve
		loadConfig = origLoad
		ioIn = origIoIn
		ioOut = origIoOut
	}
}

// stubConfig makes loadConfig return an in-memory config rooted in a temp
// data dir, bypassing the filesystem lookup.
func stubConfig(t *testing.T, providerSelector string) *config.Config {
	t.Helper()
	cfg := &config.Config{DataDirectory: t.TempDir()}
	cfg.AI.Provider = providerSelector
	cfg.OpenAI.APIKey = "test-key"
	loadConfig = func() (*config.Config, error) { return cfg, nil }
	return cfg
}

func stubClient(t *testing.T, mock *testutil.MockClient) {
	t.Helper()
	resolveClient = func(*config.Config) (model.ChatClient, error) { return mock, nil }
}
