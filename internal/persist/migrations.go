package persist

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Schema migrations ship inside the binary. The numbered files create
// accounts, characters and pk_ledger in order.
//
//go:embed migrations/*.sql
var schemaFS embed.FS

// RunMigrations brings the game database up to the current schema.
// Runs once at startup; versions already applied are skipped.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(schemaFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	// goose needs database/sql; borrow a stdlib handle from the pool
	// for the duration of the run.
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("apply schema migrations: %w", err)
	}
	return nil
}
