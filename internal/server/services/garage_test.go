package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkomarov/garagehub/internal/common"
	"github.com/dkomarov/garagehub/internal/dbx"
	"github.com/dkomarov/garagehub/internal/logging"
	"github.com/dkomarov/garagehub/internal/server/models"
	"github.com/dkomarov/garagehub/internal/server/repositories/cars"
	"github.com/dkomarov/garagehub/internal/server/repositories/mods"
)

type fakeCarRepo struct {
	insertID  int64
	updateErr error
	deleteErr error

	inserted   *models.Car
	updated    *models.Car
	deletedID  int64
	photos     []models.Photo
	tags       []string
	links      []int64
	byOwner    []*models.Car
	photosByID []models.Photo
	tagsByID   []string
}

func (f *fakeCarRepo) Insert(ctx context.Context, car *models.Car) (int64, error) {
	f.inserted = car
	return f.insertID, nil
}
func (f *fakeCarRepo) Update(ctx context.Context, car *models.Car) error {
	f.updated = car
	return f.updateErr
}
func (f *fakeCarRepo) Delete(ctx context.Context, ownerID string, carID int64) error {
	f.deletedID = carID
	return f.deleteErr
}
func (f *fakeCarRepo) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Car, error) {
	return f.byOwner, nil
}
func (f *fakeCarRepo) SelectForOwner(ctx context.Context, ownerID string, carID int64) (*models.Car, error) {
	return nil, common.ErrNotFound
}
func (f *fakeCarRepo) ReplacePhotos(ctx context.Context, carID int64, photos []models.Photo) error {
	f.photos = photos
	return nil
}
func (f *fakeCarRepo) ReplaceTags(ctx context.Context, carID int64, tags []string) error {
	f.tags = tags
	return nil
}
func (f *fakeCarRepo) ReplaceModLinks(ctx context.Context, carID int64, modIDs []int64) error {
	f.links = modIDs
	return nil
}
func (f *fakeCarRepo) SelectPhotos(ctx context.Context, carID int64) ([]models.Photo, error) {
	return f.photosByID, nil
}
func (f *fakeCarRepo) SelectTags(ctx context.Context, carID int64) ([]string, error) {
	return f.tagsByID, nil
}

type fakeModRepo struct {
	catalog   map[int64]*models.Mod
	nextID    int64
	insertErr error

	inserted []*models.Mod
	orphans  int64
	swept    bool
}

func (f *fakeModRepo) SelectCatalog(ctx context.Context, category string) ([]models.Mod, error) {
	var out []models.Mod
	for _, m := range f.catalog {
		out = append(out, *m)
	}
	return out, nil
}
func (f *fakeModRepo) SelectByCar(ctx context.Context, carID int64) ([]models.Mod, error) {
	return nil, nil
}
func (f *fakeModRepo) SelectByID(ctx context.Context, id int64) (*models.Mod, error) {
	if m, ok := f.catalog[id]; ok {
		return m, nil
	}
	return nil, common.ErrNotFound
}
func (f *fakeModRepo) InsertCustom(ctx context.Context, mod *models.Mod) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.nextID++
	f.inserted = append(f.inserted, mod)
	return f.nextID, nil
}
func (f *fakeModRepo) DeleteOrphanCustom(ctx context.Context) (int64, error) {
	f.swept = true
	return f.orphans, nil
}

type fakeRepoManager struct {
	carRepo *fakeCarRepo
	modRepo *fakeModRepo
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (f *fakeRepoManager) Cars(db dbx.DBTX) cars.Repository                    { return f.carRepo }
func (f *fakeRepoManager) Mods(db dbx.DBTX) mods.Repository                    { return f.modRepo }

func newServiceWithMock(t *testing.T) (*GarageService, *fakeRepoManager, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	rm := &fakeRepoManager{
		carRepo: &fakeCarRepo{insertID: 10},
		modRepo: &fakeModRepo{catalog: map[int64]*models.Mod{
			5: {ID: 5, Brand: "HKS", Category: "Engine", Cost: 4500},
		}, nextID: 100},
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewGarageService(db, rm, logger), rm, mock, db
}

func newCar() *models.Car {
	return &models.Car{
		Make: "Toyota", Model: "Supra", Category: "street", BaseCost: 30000,
		Photos: []models.Photo{{Key: "k1"}, {Key: "k2"}},
		Tags:   []string{"JDM", "jdm", "track"},
		Mods: []models.Mod{
			{ID: 5},
			{Brand: "NoName", Description: "straight pipe", Category: "Exhaust", IsCustom: true},
		},
	}
}

func TestCreate_TransactionalAssembly(t *testing.T) {
	svc, rm, mock, db := newServiceWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	created, err := svc.Create(context.Background(), "u1", newCar())
	require.NoError(t, err)

	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, "u1", created.OwnerID)

	// catalog mod resolved by id, custom mod inserted and linked after it
	require.Len(t, rm.modRepo.inserted, 1)
	assert.Equal(t, []int64{5, 101}, rm.carRepo.links)

	// tags deduplicated and lowercased
	assert.Equal(t, []string{"jdm", "track"}, rm.carRepo.tags)

	// first photo promoted to main
	require.Len(t, rm.carRepo.photos, 2)
	assert.True(t, rm.carRepo.photos[0].IsMain)
	assert.False(t, rm.carRepo.photos[1].IsMain)

	// totals rederived: base 30000 + catalog 4500 + custom 0
	assert.Equal(t, 2, created.TotalMods)
	assert.Equal(t, 34500.0, created.TotalCost)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ValidationBeforeTransaction(t *testing.T) {
	svc, _, mock, db := newServiceWithMock(t)
	defer db.Close()

	car := newCar()
	car.Photos = nil

	_, err := svc.Create(context.Background(), "u1", car)
	require.ErrorIs(t, err, common.ErrValidation)

	// no Begin was expected: invalid entries never reach the database
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnknownCatalogModRollsBack(t *testing.T) {
	svc, _, mock, db := newServiceWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	car := newCar()
	car.Mods = []models.Mod{{ID: 999}}

	_, err := svc.Create(context.Background(), "u1", car)
	require.ErrorIs(t, err, common.ErrValidation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnknownTagRejected(t *testing.T) {
	svc, _, _, db := newServiceWithMock(t)
	defer db.Close()

	car := newCar()
	car.Tags = []string{"spaceship"}

	_, err := svc.Create(context.Background(), "u1", car)
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdate_SweepsOrphanCustomMods(t *testing.T) {
	svc, rm, mock, db := newServiceWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.Update(context.Background(), "u1", 10, newCar())
	require.NoError(t, err)

	assert.True(t, rm.modRepo.swept, "orphaned custom mods must be swept on update")
	require.NotNil(t, rm.carRepo.updated)
	assert.Equal(t, int64(10), rm.carRepo.updated.ID)
	assert.Equal(t, "u1", rm.carRepo.updated.OwnerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotOwnedRollsBack(t *testing.T) {
	svc, rm, mock, db := newServiceWithMock(t)
	defer db.Close()

	rm.carRepo.updateErr = common.ErrNotFound

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Update(context.Background(), "intruder", 10, newCar())
	require.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	svc, rm, mock, db := newServiceWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), "u1", 3))
	assert.Equal(t, int64(3), rm.carRepo.deletedID)
	assert.True(t, rm.modRepo.swept)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	svc, rm, mock, db := newServiceWithMock(t)
	defer db.Close()

	rm.carRepo.deleteErr = common.ErrNotFound

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), "u1", 404)
	require.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCars_AttachesCollections(t *testing.T) {
	svc, rm, _, db := newServiceWithMock(t)
	defer db.Close()

	rm.carRepo.byOwner = []*models.Car{{ID: 1, Make: "Mazda", Model: "RX-7"}}
	rm.carRepo.photosByID = []models.Photo{{Key: "k1", IsMain: true}}
	rm.carRepo.tagsByID = []string{"track"}

	cars, err := svc.UserCars(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "k1", cars[0].Photos[0].Key)
	assert.Equal(t, []string{"track"}, cars[0].Tags)
}

func TestCreate_InsertCustomFailureRollsBack(t *testing.T) {
	svc, rm, mock, db := newServiceWithMock(t)
	defer db.Close()

	rm.modRepo.insertErr = errors.New("disk full")

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), "u1", newCar())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
