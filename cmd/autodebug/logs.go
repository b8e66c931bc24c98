package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs <session-id>",
	Short: "Show the log of a recorded repair session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]

		cfg, err := loadConfigFlag(cmd)
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		session, err := store.GetSession(sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return fmt.Errorf("session %s not found", sessionID)
		}

		fmt.Printf("session %s — %s (%s, %d iterations)\n",
			session.ID, session.Target, session.Phase, session.Iterations)

		logs, err := store.GetLogs(sessionID)
		if err != nil {
			return err
		}
		for _, l := range logs {
			fmt.Printf("%s [%s] %s\n", l.Timestamp.Format("15:04:05"), l.Level, l.Message)
		}

		if session.Diff != "" {
			fmt.Println("\nFinal diff:")
			fmt.Println(session.Diff)
		}
		return nil
	},
}
