package cars

import (
	"context"

	"github.com/dkomarov/garagehub/internal/server/models"
)

// Repository is the persistence surface for garage entries and their owned
// collections. Implementations are bound to a dbx.DBTX, so the same calls
// run inside or outside a transaction.
type Repository interface {
	Insert(ctx context.Context, car *models.Car) (int64, error)
	Update(ctx context.Context, car *models.Car) error
	Delete(ctx context.Context, ownerID string, carID int64) error
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.Car, error)
	SelectForOwner(ctx context.Context, ownerID string, carID int64) (*models.Car, error)

	ReplacePhotos(ctx context.Context, carID int64, photos []models.Photo) error
	ReplaceTags(ctx context.Context, carID int64, tags []string) error
	ReplaceModLinks(ctx context.Context, carID int64, modIDs []int64) error

	SelectPhotos(ctx context.Context, carID int64) ([]models.Photo, error)
	SelectTags(ctx context.Context, carID int64) ([]string, error)
}
