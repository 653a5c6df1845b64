package main

import (
	"fmt"

	"lesson-planner/internal/infrastructure/database"
	"lesson-planner/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Database.Validate(); err != nil {
			return err
		}

		db, err := database.NewDB(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			return err
		}

		logger.Info("Database schema is up to date", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}
