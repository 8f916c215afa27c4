// Package repositories wires the local SQLite database of the client and the
// repositories built on top of it.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/campusevents/internal/client/migrations"
	"github.com/dmitrijs2005/campusevents/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/campusevents/internal/client/repositories/metadata"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	DB          *sql.DB
	Metadata    metadata.Repository
	Credentials *credentials.Store
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the SQLite database at dsn, migrates it and
// returns the repositories bound to it. The caller owns Repositories.DB.
func Open(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A single connection serializes writers and keeps ":memory:" databases
	// shared by every caller.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		DB:          db,
		Metadata:    metadata.NewSQLiteRepository(db),
		Credentials: credentials.NewStore(db),
	}, nil
}

// Close releases the database.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
