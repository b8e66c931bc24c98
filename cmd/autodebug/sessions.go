package main

import (
	"fmt"

	"github.com/autodebugdev/autodebug/internal/storage"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded repair sessions",
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

		printSessions(store, 0)
		return nil
	},
}

// printSessions lists stored sessions, newest first. A limit of 0
// prints everything.
func printSessions(store *storage.DB, limit int) {
	sessions, err := store.ListSessions()
	if err != nil {
		fmt.Printf("[!] cannot list sessions: %v\n", err)
		return
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions recorded")
		return
	}
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}

	fmt.Printf("%-32s %-10s %-6s %-6s %s\n", "ID", "PHASE", "ITERS", "LANG", "TARGET")
	for _, s := range sessions {
		fmt.Printf("%-32s %-10s %-6d %-6s %s\n",
			s.ID, s.Phase, s.Iterations, truncate(s.Language, 6), s.Target)
	}
}
