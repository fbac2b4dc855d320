// Package database provides connection management and repositories for the card catalog.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/cardcol/cardcol/db/migrations"
	"github.com/cardcol/cardcol/internal/config"
	sqldb "github.com/cardcol/cardcol/internal/database/sqlc"

	// Import SQLite driver for database/sql
	_ "modernc.org/sqlite"
)

const connectionPragmas = "_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_txlock=immediate"

// Context holds the database connection and query interface.
type Context struct {
	DB      *sql.DB
	Queries *sqldb.Queries
}

// WithQueries returns a Context whose repositories run through queries, typically
// a transaction scoped set from WithTx.
func (c *Context) WithQueries(queries *sqldb.Queries) *Context {
	return &Context{DB: c.DB, Queries: queries}
}

// CreateDatabase creates and initializes a database connection with migrations.
// An empty path uses the configured default; ":memory:" opens a shared in-memory database.
func CreateDatabase(dbPath string) (*Context, error) {
	path := dbPath
	if path == "" {
		path = config.GetDBPath()
	}

	useMemory := path == ":memory:"

	if !useMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	var dsn string
	if useMemory {
		dsn = "file::memory:?cache=shared&" + connectionPragmas
	} else {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?%s", filepath.ToSlash(absPath), connectionPragmas)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Context{
		DB:      db,
		Queries: sqldb.New(db),
	}, nil
}

// CloseDatabase closes the database connection.
func CloseDatabase(ctx *Context) error {
	if ctx == nil || ctx.DB == nil {
		return nil
	}
	return ctx.DB.Close()
}

// ClearDatabase removes all cards, series and card types. Rarities are reference
// data seeded by migrations and stay.
func ClearDatabase(ctx *Context) error {
	if ctx == nil || ctx.DB == nil {
		return nil
	}

	bg := context.Background()
	return WithTx(bg, ctx, func(queries *sqldb.Queries) error {
		if err := queries.DeleteAllCards(bg); err != nil {
			return fmt.Errorf("failed to delete cards: %w", err)
		}
		if err := queries.DeleteAllSeries(bg); err != nil {
			return fmt.Errorf("failed to delete series: %w", err)
		}
		if err := queries.DeleteAllCardTypes(bg); err != nil {
			return fmt.Errorf("failed to delete card types: %w", err)
		}
		return nil
	})
}

// WithTx runs fn inside a transaction, rolling back when fn fails.
func WithTx(ctx context.Context, dbCtx *Context, fn func(*sqldb.Queries) error) error {
	if dbCtx == nil || dbCtx.DB == nil {
		return fmt.Errorf("database: missing database context")
	}

	tx, err := dbCtx.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(sqldb.New(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback error: %w)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SchemaVersion reports the applied migration version.
func SchemaVersion(ctx *Context) (uint, bool, error) {
	driver, err := sqlite.WithInstance(ctx.DB, &sqlite.Config{})
	if err != nil {
		return 0, false, fmt.Errorf("failed to initialise migrate driver: %w", err)
	}
	version, dirty, err := driver.Version()
	if err != nil {
		return 0, false, err
	}
	if version < 0 {
		return 0, dirty, nil
	}
	return uint(version), dirty, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to initialise migrate driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	defer func() {
		_ = sourceDriver.Close()
	}()

	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
