package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationFS embed.FS

// RunMigrations applies all up migrations for driver. For sqlite source is the
// database file path; for postgres it is the connection URL.
func RunMigrations(driver, source string) error {
	dir, url, err := migrationTarget(driver, source)
	if err != nil {
		return err
	}
	src, err := iofs.New(migrationFS, dir)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func migrationTarget(driver, source string) (dir, url string, err error) {
	switch driver {
	case DriverSQLite, "":
		return "migrations/sqlite", "sqlite3://" + source + "?_foreign_keys=on", nil
	case DriverPostgres:
		return "migrations/postgres", source, nil
	}
	return "", "", fmt.Errorf("unsupported database driver %q", driver)
}
