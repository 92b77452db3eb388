// Package database opens the MySQL connection pool and applies schema migrations
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrationsTable is the golang-migrate bookkeeping table
const MigrationsTable = "edupath_schema_migrations"

// Connect opens a MySQL connection pool and verifies it with a ping
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// MigrationSource resolves the migrations directory as a file:// URL
// An explicit path wins; otherwise the directory is searched relative to the working directory
func MigrationSource(path string) string {
	if path != "" {
		return "file://" + path
	}
	for _, candidate := range []string{"migrations", "../migrations", "../../migrations"} {
		if _, err := os.Stat(candidate); err == nil {
			return "file://" + candidate
		}
	}
	return "file://migrations"
}

func newMigrate(db *sql.DB, path string) (*migrate.Migrate, error) {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: MigrationsTable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(MigrationSource(path), "mysql", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, nil
}

// RunMigrations applies all pending up migrations
func RunMigrations(db *sql.DB, path string) error {
	m, err := newMigrate(db, path)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// RollbackMigrations reverts the given number of migrations, or all of them when steps <= 0
func RollbackMigrations(db *sql.DB, path string, steps int) error {
	m, err := newMigrate(db, path)
	if err != nil {
		return err
	}

	if steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	return nil
}

// MigrationVersion reports the current schema version and whether it is dirty
func MigrationVersion(db *sql.DB, path string) (uint, bool, error) {
	m, err := newMigrate(db, path)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}

	return version, dirty, nil
}
