package main

import (
	"database/sql"
	"fmt"

	"github.com/edupath/backend/internal/config"
	"github.com/edupath/backend/internal/database"
	"github.com/edupath/backend/internal/logger"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "edupath-admin",
	Short:        "Operational tasks for the EduPath API",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if path, _ := cmd.Flags().GetString("migrations"); path != "" {
			loaded.MigrationsPath = path
		}
		if err := logger.Init(loaded.Logging.Level); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg = loaded
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("migrations", "", "Path to the migrations directory (overrides MIGRATIONS_PATH)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(recomputeCmd)
	rootCmd.AddCommand(issueTokenCmd)
}

// openDB connects to the configured database; the caller closes it
func openDB() (*sql.DB, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
