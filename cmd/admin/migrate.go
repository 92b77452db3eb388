package main

import (
	"fmt"

	"github.com/edupath/backend/internal/database"
	"github.com/edupath/backend/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.RunMigrations(db, cfg.MigrationsPath); err != nil {
			return err
		}
		logger.Logger.Info("Migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		if steps < 0 {
			return fmt.Errorf("--steps must not be negative")
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.RollbackMigrations(db, cfg.MigrationsPath, steps); err != nil {
			return err
		}
		logger.Logger.Info("Migrations rolled back", zap.Int("steps", steps))
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		version, dirty, err := database.MigrationVersion(db, cfg.MigrationsPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back (0 rolls back all)")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
}
