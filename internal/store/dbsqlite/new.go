// Package dbsqlite implements the block store contract on SQLite.
package dbsqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite" // driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Metrics observes repository operations.
type Metrics interface {
	Observe(operation string, err error, started time.Time)
}

// NopMetrics discards all observations.
type NopMetrics struct{}

func (NopMetrics) Observe(string, error, time.Time) {}

type Store struct {
	db      *sql.DB
	metrics Metrics
}

// Open opens (creating if missing) the sqlite store at path and applies the
// embedded schema migrations.
func Open(path string, metrics Metrics) (*Store, error) {
	dsn := "file:" + path +
		"?_txlock=immediate" + // BEGIN IMMEDIATE-style txns
		"&_pragma=foreign_keys(ON)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Keep the pool simple: a single connection avoids SQLITE_BUSY while a seed
	// runs next to reads.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Store{db: db, metrics: metrics}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}
	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("init migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
