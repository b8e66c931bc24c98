package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var fixCmd = &cobra.Command{
	Use:   "fix <file>",
	Short: "Run one repair session against a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		message, _ := cmd.Flags().GetString("message")
		policyOverride, _ := cmd.Flags().GetString("policy")
		retriesOverride, _ := cmd.Flags().GetInt("max-retries")

		cfg, err := loadConfigFlag(cmd)
		if err != nil {
			return err
		}
		if policyOverride != "" {
			cfg.Repair.Policy = policyOverride
		}
		if retriesOverride > 0 {
			cfg.Repair.MaxRetries = retriesOverride
		}

		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		engine, _, err := buildEngine(cfg, store)
		if err != nil {
			return err
		}

		session, repairErr := engine.Repair(cmd.Context(), target, message)

		if repairErr != nil {
			fmt.Fprintf(os.Stderr, "[!] Auto-repair failed after %d iterations (%s)\n",
				session.Iterations, session.FailReason)
			if session.Last != nil && session.Last.Stderr != "" {
				fmt.Fprintf(os.Stderr, "Last error log:\n%s\n", truncateOutput(session.Last.Stderr, 2000))
			}
			return repairErr
		}

		fmt.Printf("[SUCCESS] %s repaired after %d iterations (session %s)\n",
			target, session.Iterations, session.ID)
		if session.BackupPath != "" {
			fmt.Printf("Backup of the original saved to %s\n", session.BackupPath)
		}
		if session.Diff != "" {
			fmt.Println("\nApplied changes:")
			fmt.Println(session.Diff)
		} else {
			fmt.Println("No changes were needed.")
		}
		return nil
	},
}
