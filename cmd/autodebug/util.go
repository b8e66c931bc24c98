package main

import (
	"fmt"

	"github.com/autodebugdev/autodebug/internal/adapter/ai"
	"github.com/autodebugdev/autodebug/internal/adapter/sandbox"
	"github.com/autodebugdev/autodebug/internal/config"
	"github.com/autodebugdev/autodebug/internal/core"
	"github.com/autodebugdev/autodebug/internal/lang"
	"github.com/autodebugdev/autodebug/internal/storage"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "autodebug.yaml"

// loadConfigFlag resolves the --config flag: an explicit path must
// exist, the default path is optional.
func loadConfigFlag(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		return config.LoadConfig(configPath)
	}
	return config.LoadOrDefault(defaultConfigPath)
}

// openStore opens the sqlite audit store at the configured path.
func openStore(cfg *config.Config) (*storage.DB, error) {
	dbPath := cfg.Server.DBPath
	if dbPath == "" {
		dbPath = ".autodebug/autodebug.db"
	}
	return storage.Open(dbPath)
}

// buildEngine wires the repair engine: language table, sandbox runner
// for the configured transport, Ollama fix requester, and audit store.
func buildEngine(cfg *config.Config, store *storage.DB) (*core.Engine, *lang.Table, error) {
	table := lang.NewTable(cfg.Languages)

	var runner core.SandboxRunner
	switch cfg.Sandbox.Transport.Type {
	case "", "local":
		runner = sandbox.NewLocal(cfg.Sandbox)
	case "ssh":
		runner = sandbox.NewSSH(cfg.Sandbox)
	default:
		return nil, nil, fmt.Errorf("unknown sandbox transport: %s", cfg.Sandbox.Transport.Type)
	}

	fixer, err := ai.NewOllama(cfg.AI)
	if err != nil {
		return nil, nil, err
	}

	var sessionStore core.SessionStore
	if store != nil {
		sessionStore = store
	}

	return core.NewEngine(cfg, table, runner, fixer, sessionStore), table, nil
}

func truncateOutput(s string, max int) string {
	return truncateWithSuffix(s, max, "...")
}

func truncate(s string, max int) string {
	return truncateWithSuffix(s, max, "..")
}

func truncateWithSuffix(s string, max int, suffix string) string {
	if len(s) <= max {
		return s
	}
	if max <= len(suffix) {
		return suffix[:max]
	}
	return s[:max-len(suffix)] + suffix
}
