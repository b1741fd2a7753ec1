// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkomarov/garagehub/internal/dbx"
	"github.com/dkomarov/garagehub/internal/server/migrations"
	"github.com/dkomarov/garagehub/internal/server/repositories/cars"
	"github.com/dkomarov/garagehub/internal/server/repositories/mods"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Cars returns a cars.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Cars(db dbx.DBTX) cars.Repository {
	return cars.NewPostgresRepository(db)
}

// Mods returns a mods.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Mods(db dbx.DBTX) mods.Repository {
	return mods.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
