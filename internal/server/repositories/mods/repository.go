package mods

import (
	"context"

	"github.com/dkomarov/garagehub/internal/server/models"
)

// Repository is the persistence surface for modification rows: the shared
// catalog plus car-owned custom mods.
type Repository interface {
	SelectCatalog(ctx context.Context, category string) ([]models.Mod, error)
	SelectByCar(ctx context.Context, carID int64) ([]models.Mod, error)
	SelectByID(ctx context.Context, id int64) (*models.Mod, error)
	InsertCustom(ctx context.Context, mod *models.Mod) (int64, error)
	DeleteOrphanCustom(ctx context.Context) (int64, error)
}
