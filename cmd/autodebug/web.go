package main

import (
	"fmt"

	"github.com/autodebugdev/autodebug/internal/web"
	"github.com/spf13/cobra"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the chat-style web front end",
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")

		cfg, err := loadConfigFlag(cmd)
		if err != nil {
			return err
		}
		if port > 0 {
			cfg.Server.Port = port
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

		handler := web.NewHandler(cfg, engine, store, table)
		server := web.NewServer(cfg.Server, handler)

		fmt.Printf("Starting autodebug chat UI on port %d...\n", cfg.Server.Port)
		return server.ListenAndServe(cmd.Context())
	},
}
