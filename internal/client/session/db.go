package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/fittracker/internal/client/migrations"
	"github.com/dmitrijs2005/fittracker/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// RunMigrations applies the embedded schema migrations to db. It is safe to
// call on an already migrated database.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// OpenDatabase opens (creating if necessary) the SQLite file at dsn and
// migrates it. Missing parent directories are created.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, fmt.Errorf("prepare session db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	// a single connection keeps ":memory:" databases consistent and
	// serialises writers on file databases
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
