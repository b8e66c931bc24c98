package main

import (
	"fmt"
	"os"

	"github.com/autodebugdev/autodebug/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "autodebug",
	Short: "AutoDebug — Autonomous AI Debugging Loop",
	Long:  "AutoDebug repeatedly runs a broken file in a sandbox, consults a local Ollama model with the diagnostics, and applies candidate fixes until the code runs cleanly or the retry budget is exhausted.",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("autodebug version %s\n", version)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = defaultConfigPath
		}

		_, err := config.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config validation failed: %v\n", err)
			return err
		}

		fmt.Printf("Config validation passed: %s\n", configPath)
		return nil
	},
}

func main() {
	// Register flags.
	validateCmd.Flags().StringP("config", "c", "", "Path to config file")

	fixCmd.Flags().StringP("config", "c", "", "Path to config file")
	fixCmd.Flags().StringP("message", "m", "", "Bug description")
	fixCmd.Flags().String("policy", "", "Success policy override (strict|lenient)")
	fixCmd.Flags().Int("max-retries", 0, "Retry budget override")
	_ = fixCmd.MarkFlagRequired("message")

	chatCmd.Flags().StringP("config", "c", "", "Path to config file")

	webCmd.Flags().StringP("config", "c", "", "Path to config file")
	webCmd.Flags().IntP("port", "p", 0, "Override server port")

	sessionsCmd.Flags().StringP("config", "c", "", "Path to config file")
	logsCmd.Flags().StringP("config", "c", "", "Path to config file")
	statsCmd.Flags().StringP("config", "c", "", "Path to config file")
	doctorCmd.Flags().StringP("config", "c", "", "Path to config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(doctorCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
