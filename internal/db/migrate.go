package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"feedsng/internal/logger"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrate brings the schema up to date. The migration driver shares the pool,
// so the migrate instance is deliberately never closed.
func Migrate(d *DB) error {
	var (
		driver database.Driver
		err    error
	)
	switch d.Dialect {
	case SQLite:
		driver, err = sqlite.WithInstance(d.DB, &sqlite.Config{})
	case Postgres:
		driver, err = postgres.WithInstance(d.DB, &postgres.Config{})
	default:
		return fmt.Errorf("unsupported dialect %q", d.Dialect)
	}
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations/"+string(d.Dialect))
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(d.Dialect), driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	migrateErr := m.Up()
	if migrateErr != nil && !errors.Is(migrateErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", migrateErr)
	}

	version, dirty, versionErr := m.Version()
	if versionErr != nil && !errors.Is(versionErr, migrate.ErrNilVersion) {
		logger.Warn("migration version unavailable", "module", "db", "action", "migrate", "error", versionErr)
		return nil
	}
	result := "applied"
	if errors.Is(migrateErr, migrate.ErrNoChange) {
		result = "unchanged"
	}
	logger.Info("schema migrated", "module", "db", "action", "migrate", "dialect", d.Dialect, "version", version, "dirty", dirty, "result", result)
	return nil
}
