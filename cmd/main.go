// Package main is the entry point for the lesson-planner CLI.
package main

import (
	"fmt"
	"os"

	"lesson-planner/internal/config"
	"lesson-planner/internal/logger"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:     "lesson-planner",
	Short:   "Generate, store and export lesson plans",
	Version: version,
	Long: `lesson-planner serves the lesson plan HTTP API and offers offline tools
around it. Configuration is read from an env file (default .env) and the
process environment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")

		loaded, err := config.LoadFile(envFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded

		env := cfg.Server.Environment
		if env == "" {
			env = "development"
		}
		if err := logger.Init(env); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "env-format configuration file")

	rootCmd.AddCommand(serveCmd, migrateCmd, renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
