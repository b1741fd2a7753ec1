// Package assembler composes validated car facts, tags, resolved mods and
// uploaded photo keys into single commit requests against the entry store.
package assembler

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkomarov/garagehub/internal/client/models"
	"github.com/dkomarov/garagehub/internal/common"
)

// Store is the slice of the entry-store client the assembler commits
// through.
type Store interface {
	CreateCar(ctx context.Context, entry models.CarEntry) (*models.CarEntry, error)
	UpdateCar(ctx context.Context, entryID int64, entry models.CarEntry) error
	DeleteCar(ctx context.Context, entryID int64) error
}

// Uploader is the slice of the photo pipeline the assembler drives on
// commit. Staged reports how many files await upload; Run transfers them
// and returns their durable keys in staging order.
type Uploader interface {
	Staged() int
	Run(ctx context.Context) ([]string, error)
}

// Draft accumulates one entry's state while the user assembles it: car
// facts and tags, the identity-deduplicated mod set, and any photos already
// persisted from a previous edit of the same entry.
type Draft struct {
	Entry          models.CarEntry
	ExistingPhotos []models.Photo

	mods models.ModSet
	tags []string
}

// AddMod appends m to the draft's mod set. Adding a mod whose identity is
// already present is a silent no-op; the return value reports whether the
// set grew.
func (d *Draft) AddMod(m models.Mod) bool {
	return d.mods.Add(m)
}

// RemoveMod drops the mod with the given identity, if present.
func (d *Draft) RemoveMod(identity string) {
	d.mods.Remove(identity)
}

// Mods returns the resolved mod set in insertion order.
func (d *Draft) Mods() []models.Mod {
	return d.mods.Mods()
}

// AddTag appends tag to the draft's tag set; duplicates are dropped.
func (d *Draft) AddTag(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	for _, t := range d.tags {
		if strings.EqualFold(t, tag) {
			return
		}
	}
	d.tags = append(d.tags, tag)
}

// Tags returns the tag set.
func (d *Draft) Tags() []string {
	return d.tags
}

// Assembler validates drafts and issues create/update/delete calls against
// the entry store. The exactly-one-main-photo rule is enforced here, at
// commit time, because the UI legitimately passes through transient states
// with zero or several mains while editing.
type Assembler struct {
	store Store
}

// New builds an Assembler committing through store.
func New(store Store) *Assembler {
	return &Assembler{store: store}
}

// Create validates the draft, uploads any staged photos, and issues one
// create request. Validation failures surface before any network call,
// including the uploads.
func (a *Assembler) Create(ctx context.Context, d *Draft, up Uploader) (*models.CarEntry, error) {
	entry, err := a.assemble(ctx, d, up)
	if err != nil {
		return nil, err
	}
	created, err := a.store.CreateCar(ctx, *entry)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update follows the same contract as Create but targets an existing entry;
// the store replaces all associated collections wholesale.
func (a *Assembler) Update(ctx context.Context, entryID int64, d *Draft, up Uploader) error {
	entry, err := a.assemble(ctx, d, up)
	if err != nil {
		return err
	}
	return a.store.UpdateCar(ctx, entryID, *entry)
}

// Delete removes the entry and its owned associations.
func (a *Assembler) Delete(ctx context.Context, entryID int64) error {
	return a.store.DeleteCar(ctx, entryID)
}

// assemble runs commit validation, drives the upload pipeline, merges photo
// keys, settles the main-photo designation and computes the derived totals.
func (a *Assembler) assemble(ctx context.Context, d *Draft, up Uploader) (*models.CarEntry, error) {
	if err := validate(d, up); err != nil {
		return nil, err
	}

	keys, err := up.Run(ctx)
	if err != nil {
		return nil, err
	}

	photos := make([]models.Photo, 0, len(d.ExistingPhotos)+len(keys))
	photos = append(photos, d.ExistingPhotos...)
	for _, k := range keys {
		photos = append(photos, models.Photo{Key: k})
	}
	settleMainPhoto(photos)

	mods := d.Mods()

	entry := d.Entry
	entry.Photos = photos
	entry.Tags = d.Tags()
	entry.Mods = mods
	entry.TotalMods = len(mods)
	entry.TotalCost = entry.BaseCost
	for _, m := range mods {
		entry.TotalCost += m.Cost
	}
	return &entry, nil
}

// validate checks the commit preconditions in order, failing fast with a
// user-facing message. Nothing network-bound may run before it passes.
func validate(d *Draft, up Uploader) error {
	if strings.TrimSpace(d.Entry.Make) == "" {
		return fmt.Errorf("%w: make is required", common.ErrValidation)
	}
	if strings.TrimSpace(d.Entry.Model) == "" {
		return fmt.Errorf("%w: model is required", common.ErrValidation)
	}
	if strings.TrimSpace(d.Entry.Category) == "" {
		return fmt.Errorf("%w: category is required", common.ErrValidation)
	}
	total := len(d.ExistingPhotos) + up.Staged()
	if total == 0 {
		return fmt.Errorf("%w: at least one photo is required", common.ErrValidation)
	}
	if total > common.MaxPhotosPerEntry {
		return fmt.Errorf("%w: an entry can hold at most %d photos", common.ErrValidation, common.MaxPhotosPerEntry)
	}
	return nil
}

// settleMainPhoto leaves exactly one photo marked main in a non-empty list:
// the first already-marked photo wins, any others are demoted, and when
// none is marked the first photo is promoted.
func settleMainPhoto(photos []models.Photo) {
	if len(photos) == 0 {
		return
	}
	main := -1
	for i := range photos {
		if photos[i].IsMainPhoto {
			if main == -1 {
				main = i
			} else {
				photos[i].IsMainPhoto = false
			}
		}
	}
	if main == -1 {
		photos[0].IsMainPhoto = true
	}
}
