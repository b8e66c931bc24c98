package main

import (
	"fmt"
	"time"

	"github.com/autodebugdev/autodebug/internal/metrics"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show repair statistics for the last 30 days",
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

		sessions, err := store.ListSessions()
		if err != nil {
			return err
		}

		stats := metrics.Calculate(sessions)
		fmt.Println("=== Repair Stats (30 days) ===")
		fmt.Printf("sessions:        %d\n", stats.Sessions)
		fmt.Printf("succeeded:       %d\n", stats.Succeeded)
		fmt.Printf("failed:          %d\n", stats.Failed)
		fmt.Printf("success rate:    %.1f%%\n", stats.SuccessRate)
		fmt.Printf("mean iterations: %.1f\n", stats.MeanIterations)
		fmt.Printf("mean duration:   %s\n", stats.MeanDuration.Round(time.Millisecond))
		return nil
	},
}
