// Package services holds the server-side business logic: the garage
// service over the repositories and the presigned-URL service over S3.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkomarov/garagehub/internal/common"
	"github.com/dkomarov/garagehub/internal/dbx"
	"github.com/dkomarov/garagehub/internal/logging"
	"github.com/dkomarov/garagehub/internal/server/models"
	"github.com/dkomarov/garagehub/internal/server/repositories/repomanager"
)

// GarageService implements entry reads and transactional writes. All
// mutation paths run inside a single transaction so no partial entry state
// is ever readable.
type GarageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewGarageService(db *sql.DB, repomanager repomanager.RepositoryManager, logger logging.Logger) *GarageService {
	return &GarageService{
		db:          db,
		repomanager: repomanager,
		logger:      logger,
	}
}

// UserCars returns the owner's entries with photos, tags and mods attached.
func (s *GarageService) UserCars(ctx context.Context, ownerID string) ([]*models.Car, error) {
	carRepo := s.repomanager.Cars(s.db)
	modRepo := s.repomanager.Mods(s.db)

	cars, err := carRepo.SelectByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for _, c := range cars {
		if c.Photos, err = carRepo.SelectPhotos(ctx, c.ID); err != nil {
			return nil, err
		}
		if c.Tags, err = carRepo.SelectTags(ctx, c.ID); err != nil {
			return nil, err
		}
		if c.Mods, err = modRepo.SelectByCar(ctx, c.ID); err != nil {
			return nil, err
		}
	}
	return cars, nil
}

// CatalogMods returns the catalog snapshot, optionally narrowed to one
// category. Custom mods never appear here.
func (s *GarageService) CatalogMods(ctx context.Context, category string) ([]models.Mod, error) {
	return s.repomanager.Mods(s.db).SelectCatalog(ctx, category)
}

// Create validates and persists a new entry for ownerID in one transaction:
// facts, photos (main settled), tags (vocabulary checked), mod links, with
// custom mods created alongside. Totals are rederived server-side.
func (s *GarageService) Create(ctx context.Context, ownerID string, car *models.Car) (*models.Car, error) {
	if err := s.prepare(car); err != nil {
		return nil, err
	}
	car.OwnerID = ownerID

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		carRepo := s.repomanager.Cars(tx)
		modRepo := s.repomanager.Mods(tx)

		modIDs, err := s.resolveMods(ctx, modRepo, car)
		if err != nil {
			return err
		}

		id, err := carRepo.Insert(ctx, car)
		if err != nil {
			return err
		}
		car.ID = id

		if err := carRepo.ReplacePhotos(ctx, id, car.Photos); err != nil {
			return err
		}
		if err := carRepo.ReplaceTags(ctx, id, car.Tags); err != nil {
			return err
		}
		return carRepo.ReplaceModLinks(ctx, id, modIDs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "entry created", "ownerID", ownerID, "entryID", car.ID)
	return car, nil
}

// Update replaces the owner's entry wholesale: facts, photo list, tag set
// and mod links, deleting custom mods orphaned by the replacement. Returns
// common.ErrNotFound when the entry is not the caller's.
func (s *GarageService) Update(ctx context.Context, ownerID string, carID int64, car *models.Car) error {
	if err := s.prepare(car); err != nil {
		return err
	}
	car.ID = carID
	car.OwnerID = ownerID

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		carRepo := s.repomanager.Cars(tx)
		modRepo := s.repomanager.Mods(tx)

		modIDs, err := s.resolveMods(ctx, modRepo, car)
		if err != nil {
			return err
		}

		if err := carRepo.Update(ctx, car); err != nil {
			return err
		}
		if err := carRepo.ReplacePhotos(ctx, carID, car.Photos); err != nil {
			return err
		}
		if err := carRepo.ReplaceTags(ctx, carID, car.Tags); err != nil {
			return err
		}
		if err := carRepo.ReplaceModLinks(ctx, carID, modIDs); err != nil {
			return err
		}

		_, err = modRepo.DeleteOrphanCustom(ctx)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "entry updated", "ownerID", ownerID, "entryID", carID)
	return nil
}

// Delete removes the owner's entry and every owned association, then sweeps
// custom mods the removal orphaned.
func (s *GarageService) Delete(ctx context.Context, ownerID string, carID int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Cars(tx).Delete(ctx, ownerID, carID); err != nil {
			return err
		}
		_, err := s.repomanager.Mods(tx).DeleteOrphanCustom(ctx)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "entry deleted", "ownerID", ownerID, "entryID", carID)
	return nil
}

// prepare runs the write-path normalization shared by create and update:
// fact validation, tag vocabulary check, main-photo settlement and totals.
func (s *GarageService) prepare(car *models.Car) error {
	if err := car.Validate(); err != nil {
		return err
	}
	tags, err := models.NormalizeTags(car.Tags)
	if err != nil {
		return err
	}
	car.Tags = tags
	car.SettleMainPhoto()
	car.RecomputeTotals()
	return nil
}

// resolveMods maps the entry's mods to row ids: catalog mods must exist and
// are linked as-is, custom mods are inserted first. Order is preserved.
func (s *GarageService) resolveMods(ctx context.Context, repo interface {
	SelectByID(ctx context.Context, id int64) (*models.Mod, error)
	InsertCustom(ctx context.Context, mod *models.Mod) (int64, error)
}, car *models.Car) ([]int64, error) {

	ids := make([]int64, 0, len(car.Mods))
	for i := range car.Mods {
		m := &car.Mods[i]
		if m.IsCustom {
			id, err := repo.InsertCustom(ctx, m)
			if err != nil {
				return nil, err
			}
			m.ID = id
			ids = append(ids, id)
			continue
		}

		if _, err := repo.SelectByID(ctx, m.ID); err != nil {
			return nil, fmt.Errorf("%w: unknown catalog mod %d", common.ErrValidation, m.ID)
		}
		ids = append(ids, m.ID)
	}
	return ids, nil
}
