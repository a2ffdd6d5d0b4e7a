// Package store provides the SQL implementation of the article source and the
// lead sink, plus connection setup, migrations and demo seeding.
package store

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	_ "github.com/go-sql-driver/mysql" // MySQL driver for database/sql
	_ "github.com/lib/pq"              // PostgreSQL driver for database/sql
	_ "modernc.org/sqlite"             // SQLite driver for database/sql
)

//go:embed migrations
var migrations embed.FS

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// DBConfig holds database configuration options.
type DBConfig struct {
	Driver string
	DSN    string
	// MaxOpenConns is the maximum number of open connections to the database.
	MaxOpenConns int
	// MaxIdleConns is the maximum number of connections in the idle connection pool.
	MaxIdleConns int
	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime is the maximum amount of time a connection may be idle.
	ConnMaxIdleTime time.Duration
}

// DefaultDBConfig returns pool defaults for the given driver.
func DefaultDBConfig(driver, dsn string) DBConfig {
	return DBConfig{
		Driver:          driver,
		DSN:             dsn,
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// sqlitePragmas configure SQLite for concurrent readers and a single writer.
var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA temp_store=MEMORY",
}

// Open opens a database with default pool settings.
func Open(driver, dsn string) (*sqlx.DB, error) {
	return OpenWithConfig(DefaultDBConfig(driver, dsn))
}

// OpenWithConfig opens and pings a database connection.
func OpenWithConfig(cfg DBConfig) (*sqlx.DB, error) {
	bindName, err := bindDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	raw, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// modernc registers itself as "sqlite", which sqlx does not map to a bind type.
	db := sqlx.NewDb(raw.DB, bindName)

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if cfg.Driver == DriverSQLite {
		for _, pragma := range sqlitePragmas {
			if _, err := db.Exec(pragma); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
			}
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func bindDriverName(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return "sqlite3", nil
	case DriverPostgres:
		return "postgres", nil
	case DriverMySQL:
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func gooseDialect(driver string) string {
	if driver == DriverSQLite {
		return "sqlite3"
	}
	return driver
}

// Migrate runs all pending migrations for driver.
func Migrate(db *sqlx.DB, driver string) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(gooseDialect(driver)); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.Up(db.DB, "migrations/"+driver); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

// Ping checks that the database is reachable.
func Ping(ctx context.Context, db *sqlx.DB) error {
	return db.PingContext(ctx)
}
