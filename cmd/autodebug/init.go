package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate an autodebug.yaml configuration template",
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := filepath.Join(".", defaultConfigPath)

		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("autodebug.yaml already exists; remove it first or use a different directory")
		}

		if err := os.WriteFile(outPath, []byte(configTemplate()), 0644); err != nil {
			return fmt.Errorf("write autodebug.yaml: %w", err)
		}

		fmt.Println("Created autodebug.yaml")
		fmt.Println("Edit the file and run 'autodebug validate' before your first session.")
		return nil
	},
}

func configTemplate() string {
	return `project:
  name: my-workspace
  workspace: .
  description: "Files to debug live here"

ai:
  endpoint: http://localhost:11434/api/generate
  model: qwen2.5-coder:1.5b
  temperature: 0.2
  timeout: 120s

repair:
  max_retries: 3
  policy: strict          # strict|lenient
  restore_on_failure: false

sandbox:
  timeout: 5s
  transport:
    type: local           # local|ssh
    # ssh:
    #   host: sandbox.example.com
    #   user: debug
    #   key: ~/.ssh/id_ed25519

# languages:              # extend or override the built-in table
#   - extension: .rb
#     name: Ruby
#     run: "ruby ${FILE}"
#     fence_tag: ruby

server:
  port: 8080
  db_path: .autodebug/autodebug.db
`
}
