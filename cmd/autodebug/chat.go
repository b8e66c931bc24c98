package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/autodebugdev/autodebug/internal/chat"
	"github.com/autodebugdev/autodebug/internal/lang"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive debugging chatbot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigFlag(cmd)
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		engine, table, err := buildEngine(cfg, store)
		if err != nil {
			return err
		}

		filePattern := chat.FilePattern(table.Extensions())

		fmt.Println("=====================================================")
		fmt.Println("   AUTODEBUG — AUTONOMOUS DEBUGGER (LOCAL OLLAMA)    ")
		fmt.Println("=====================================================")
		fmt.Printf("model: %s | policy: %s | max retries: %d\n",
			cfg.AI.Model, cfg.Repair.Policy, cfg.Repair.MaxRetries)
		fmt.Println("usage: describe the bug and mention the file with @")
		fmt.Println("example: 'Fix the recursion error in @script.py'")
		fmt.Println("type 'exit' to quit, 'help' for commands.")
		fmt.Println()

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for {
			fmt.Print(">> ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			command, err := chat.ParseCommand(line)
			if err == nil {
				switch command.Action {
				case "quit":
					fmt.Println("Exiting...")
					return nil
				case "help":
					printChatHelp()
				case "files":
					printFiles(cfg.Project.Workspace, table)
				case "sessions":
					printSessions(store, 10)
				}
				continue
			}
			if !errors.Is(err, chat.ErrNotCommand) {
				continue
			}

			// Free text: a bug report must reference a target via @file.
			target, ok := chat.ExtractTarget(line, filePattern)
			if !ok {
				fmt.Printf("[!] Please specify a file using '@filename%s'\n",
					strings.Join(table.Extensions(), "' or '@filename"))
				continue
			}

			session, repairErr := engine.Repair(cmd.Context(), target, line)
			if repairErr != nil {
				fmt.Printf("[!] Auto-repair of %s failed after %d iterations (%s)\n",
					target, session.Iterations, session.FailReason)
				if session.Last != nil && session.Last.Stderr != "" {
					fmt.Printf("    last error: %s\n", lastLine(session.Last.Stderr))
				}
				continue
			}

			fmt.Printf("[SUCCESS] %s repaired after %d iterations.\n", target, session.Iterations)
			if session.BackupPath != "" {
				fmt.Printf("    backup saved to %s\n", session.BackupPath)
			}
			if session.Last != nil && strings.TrimSpace(session.Last.Stdout) != "" {
				fmt.Printf("    output: %s\n", truncate(strings.TrimSpace(session.Last.Stdout), 200))
			}
		}
	},
}

func printChatHelp() {
	fmt.Println("commands:")
	fmt.Println("  <description> @<file>   run a repair session for the file")
	fmt.Println("  files                   list debuggable files in the workspace")
	fmt.Println("  sessions                show recent repair sessions")
	fmt.Println("  exit | quit             leave the chatbot")
}

func printFiles(workspace string, table *lang.Table) {
	if workspace == "" {
		workspace = "."
	}
	files, err := chat.ListFiles(workspace, table)
	if err != nil {
		fmt.Printf("[!] cannot list files: %v\n", err)
		return
	}
	if len(files) == 0 {
		fmt.Println("no debuggable files in the workspace")
		return
	}
	for _, f := range files {
		fmt.Println("  " + f)
	}
}

// lastLine returns the final non-empty line of a diagnostic blob, the
// part users actually want to see for a stack trace.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
