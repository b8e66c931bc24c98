package main

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/autodebugdev/autodebug/internal/config"
	"github.com/autodebugdev/autodebug/internal/lang"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check environment and configuration health",
	RunE: func(cmd *cobra.Command, args []string) error {
		allOK := true

		fmt.Println("=== AutoDebug Doctor ===")
		fmt.Println()

		// Check config file.
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = defaultConfigPath
		}
		cfg := config.Default()
		if _, err := os.Stat(configPath); err == nil {
			fmt.Printf("[OK] config file found: %s\n", configPath)
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("[WARN] config validation: %v\n", err)
			} else {
				fmt.Println("[OK] config is valid")
				cfg = loaded
			}
		} else {
			fmt.Printf("[WARN] config file not found: %s (run 'autodebug init' to create one)\n", configPath)
		}

		// Check the Ollama endpoint.
		if checkOllama(cfg.AI.Endpoint) {
			fmt.Printf("[OK] ollama endpoint reachable: %s\n", cfg.AI.Endpoint)
		} else {
			fmt.Printf("[FAIL] ollama endpoint not reachable: %s (is Ollama running?)\n", cfg.AI.Endpoint)
			allOK = false
		}

		// Check language runtimes.
		table := lang.NewTable(cfg.Languages)
		for _, ext := range table.Extensions() {
			l, _ := table.Resolve("file" + ext)
			name := strings.Fields(l.Run)[0]
			if _, err := exec.LookPath(name); err == nil {
				fmt.Printf("[OK] %s runtime installed: %s\n", l.Name, name)
			} else {
				fmt.Printf("[INFO] %s runtime not in PATH: %s (%s files cannot be debugged)\n",
					l.Name, name, ext)
			}
		}

		// Check state directory.
		dbPath := cfg.Server.DBPath
		if _, err := os.Stat(dbPath); err == nil {
			fmt.Printf("[OK] session store exists: %s\n", dbPath)
		} else {
			fmt.Printf("[INFO] session store not found: %s (will be created on first session)\n", dbPath)
		}

		fmt.Println()
		if allOK {
			fmt.Println("All checks passed!")
		} else {
			fmt.Println("Some checks failed. Please fix the issues above.")
		}
		return nil
	},
}

// checkOllama probes the endpoint host with a short timeout. Any HTTP
// response counts as reachable; only connection errors fail.
func checkOllama(endpoint string) bool {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(strings.TrimSuffix(endpoint, "/api/generate"))
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
