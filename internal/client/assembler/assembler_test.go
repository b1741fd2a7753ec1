package assembler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkomarov/garagehub/internal/client/models"
	"github.com/dkomarov/garagehub/internal/common"
)

type fakeStore struct {
	created *models.CarEntry
	updated *models.CarEntry
	deleted []int64

	createErr error
	updateErr error
}

func (f *fakeStore) CreateCar(ctx context.Context, e models.CarEntry) (*models.CarEntry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = &e
	stored := e
	stored.ID = 101
	return &stored, nil
}

func (f *fakeStore) UpdateCar(ctx context.Context, id int64, e models.CarEntry) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = &e
	return nil
}

func (f *fakeStore) DeleteCar(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeUploader struct {
	staged int
	keys   []string
	err    error
	runs   int
}

func (f *fakeUploader) Staged() int { return f.staged }

func (f *fakeUploader) Run(ctx context.Context) ([]string, error) {
	f.runs++
	if f.err != nil {
		return nil, f.err
	}
	return f.keys, nil
}

func validDraft() *Draft {
	return &Draft{
		Entry: models.CarEntry{
			Make:     "Nissan",
			Model:    "Silvia S15",
			Category: "JDM",
			BaseCost: 18000,
		},
	}
}

func TestCreate_MarksFirstPhotoMainWhenNoneMarked(t *testing.T) {
	store := &fakeStore{}
	a := New(store)

	d := validDraft()
	d.ExistingPhotos = []models.Photo{{Key: "old-1"}, {Key: "old-2"}}
	up := &fakeUploader{staged: 1, keys: []string{"new-1"}}

	created, err := a.Create(context.Background(), d, up)
	require.NoError(t, err)
	require.NotNil(t, store.created)

	photos := store.created.Photos
	require.Len(t, photos, 3)
	assert.Equal(t, []models.Photo{
		{Key: "old-1", IsMainPhoto: true},
		{Key: "old-2"},
		{Key: "new-1"},
	}, photos)
	assert.Equal(t, int64(101), created.ID, "store-assigned id comes back")
}

func TestCreate_KeepsExplicitMainAndDemotesExtras(t *testing.T) {
	store := &fakeStore{}
	a := New(store)

	d := validDraft()
	d.ExistingPhotos = []models.Photo{
		{Key: "a"},
		{Key: "b", IsMainPhoto: true},
		{Key: "c", IsMainPhoto: true}, // transient editing state
	}

	_, err := a.Create(context.Background(), d, &fakeUploader{})
	require.NoError(t, err)

	var mains int
	for _, p := range store.created.Photos {
		if p.IsMainPhoto {
			mains++
			assert.Equal(t, "b", p.Key, "first marked photo wins")
		}
	}
	assert.Equal(t, 1, mains)
}

func TestCreate_ComputesTotals(t *testing.T) {
	store := &fakeStore{}
	a := New(store)

	d := validDraft()
	d.ExistingPhotos = []models.Photo{{Key: "p"}}
	d.AddMod(models.Mod{ID: 1, Cost: 2500})
	d.AddMod(models.Mod{ID: 2, Cost: 900})
	d.AddMod(models.Mod{Brand: "Homebrew", Category: "Engine", IsCustom: true}) // cost 0

	_, err := a.Create(context.Background(), d, &fakeUploader{})
	require.NoError(t, err)

	assert.Equal(t, 3, store.created.TotalMods)
	assert.InDelta(t, 18000+2500+900, store.created.TotalCost, 0.001)
}

func TestCreate_DuplicateModAddIsIdempotent(t *testing.T) {
	d := validDraft()

	require.True(t, d.AddMod(models.Mod{ID: 7, Cost: 100}))
	require.False(t, d.AddMod(models.Mod{ID: 7, Cost: 100}))

	assert.Len(t, d.Mods(), 1)
}

func TestCreate_ValidationFailuresSkipAllNetworkCalls(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Draft, up *fakeUploader)
		wantMsg string
	}{
		{
			name:    "empty make fails before uploads even with staged photos",
			mutate:  func(d *Draft, up *fakeUploader) { d.Entry.Make = ""; up.staged = 2 },
			wantMsg: "make",
		},
		{
			name:    "empty model",
			mutate:  func(d *Draft, up *fakeUploader) { d.Entry.Model = "  "; up.staged = 1 },
			wantMsg: "model",
		},
		{
			name:    "empty category",
			mutate:  func(d *Draft, up *fakeUploader) { d.Entry.Category = ""; up.staged = 1 },
			wantMsg: "category",
		},
		{
			name:    "zero photos",
			mutate:  func(d *Draft, up *fakeUploader) {},
			wantMsg: "photo",
		},
		{
			name: "photo cap counts existing plus staged",
			mutate: func(d *Draft, up *fakeUploader) {
				for i := 0; i < 5; i++ {
					d.ExistingPhotos = append(d.ExistingPhotos, models.Photo{Key: "k"})
				}
				up.staged = 2
			},
			wantMsg: "at most",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{}
			a := New(store)
			d := validDraft()
			up := &fakeUploader{}
			tc.mutate(d, up)

			_, err := a.Create(context.Background(), d, up)

			require.ErrorIs(t, err, common.ErrValidation)
			assert.Contains(t, err.Error(), tc.wantMsg)
			assert.Zero(t, up.runs, "pipeline must not run")
			assert.Nil(t, store.created, "no create call")
		})
	}
}

func TestCreate_UploadFailureAbortsCommit(t *testing.T) {
	store := &fakeStore{}
	a := New(store)

	d := validDraft()
	up := &fakeUploader{staged: 1, err: common.ErrTransfer}

	_, err := a.Create(context.Background(), d, up)

	require.ErrorIs(t, err, common.ErrTransfer)
	assert.Nil(t, store.created, "no partial entry may reach the store")
}

func TestCreate_StoreFailureSurfaced(t *testing.T) {
	store := &fakeStore{createErr: common.ErrStore}
	a := New(store)

	d := validDraft()
	d.ExistingPhotos = []models.Photo{{Key: "p"}}

	_, err := a.Create(context.Background(), d, &fakeUploader{})
	require.ErrorIs(t, err, common.ErrStore)
}

func TestUpdate_SameContractAsCreate(t *testing.T) {
	store := &fakeStore{}
	a := New(store)

	d := validDraft()
	d.ExistingPhotos = []models.Photo{{Key: "p"}}
	d.AddTag("track")
	d.AddTag("Track") // duplicate, case-insensitive
	d.AddTag("project")

	require.NoError(t, a.Update(context.Background(), 55, d, &fakeUploader{keys: nil}))

	require.NotNil(t, store.updated)
	assert.Equal(t, []string{"track", "project"}, store.updated.Tags)
	assert.True(t, store.updated.Photos[0].IsMainPhoto)
}

func TestUpdate_ValidationBeforeNetwork(t *testing.T) {
	store := &fakeStore{}
	a := New(store)

	err := a.Update(context.Background(), 55, &Draft{}, &fakeUploader{})

	require.ErrorIs(t, err, common.ErrValidation)
	assert.Nil(t, store.updated)
}

func TestDelete_ForwardsToStore(t *testing.T) {
	store := &fakeStore{}
	a := New(store)

	require.NoError(t, a.Delete(context.Background(), 77))
	assert.Equal(t, []int64{77}, store.deleted)
}

func TestDraft_RemoveMod(t *testing.T) {
	d := validDraft()
	d.AddMod(models.Mod{ID: 1})
	d.AddMod(models.Mod{ID: 2})

	d.RemoveMod("id-1")

	require.Len(t, d.Mods(), 1)
	assert.Equal(t, int64(2), d.Mods()[0].ID)
}
