package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkomarov/garagehub/internal/dbx"
	"github.com/dkomarov/garagehub/internal/server/repositories/cars"
	"github.com/dkomarov/garagehub/internal/server/repositories/mods"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Cars(db dbx.DBTX) cars.Repository
	Mods(db dbx.DBTX) mods.Repository
}
