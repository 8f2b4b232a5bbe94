package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Open opens the record store database with sensible defaults for the driver.
// For sqlite source is a file path; for postgres it is a connection URL.
func Open(driver, source string) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite, "":
		db, err := sqlx.Open(DriverSQLite, SQLiteDSN(source))
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(1) // sqlite
		db.SetConnMaxLifetime(0)
		return db, nil
	case DriverPostgres:
		if strings.TrimSpace(source) == "" {
			return nil, fmt.Errorf("postgres: empty dsn")
		}
		db, err := sqlx.Open(DriverPostgres, source)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(4)
		db.SetConnMaxIdleTime(5 * time.Minute)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// SQLiteDSN builds the go-sqlite3 connection string for path.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

// WithTx runs fn in a transaction.
func WithTx(db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
