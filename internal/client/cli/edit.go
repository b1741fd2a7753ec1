package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dkomarov/garagehub/internal/client/assembler"
	"github.com/dkomarov/garagehub/internal/client/models"
	"github.com/dkomarov/garagehub/internal/common"
)

// Edit re-runs the assembly wizard over an existing entry. The draft is
// seeded from the stored entry, so photos already persisted survive the
// commit alongside any newly staged ones, and the store replaces the
// collections wholesale on update.
func (a *App) Edit(ctx context.Context) error {
	id, err := GetInt(a.reader, "Enter entry id to edit", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	entry := a.findCar(int64(id))
	if entry == nil {
		if err := a.refresh(ctx); err != nil {
			log.Println(err.Error())
			return err
		}
		entry = a.findCar(int64(id))
	}
	if entry == nil {
		fmt.Fprintf(a.out, "No entry with id %d.\n", id)
		return nil
	}

	d := draftFromEntry(entry)

	if err := a.editFacts(d); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.askTags(d); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.askMods(ctx, d); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.reviewExistingPhotos(d); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	pl, err := a.askPhotos(d)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.assembler.Update(ctx, entry.ID, d, pl); err != nil {
		if errors.Is(err, common.ErrValidation) {
			fmt.Fprintf(a.out, "Entry not saved: %v\n", err)
		} else {
			log.Printf("Error: %s", err.Error())
		}
		return err
	}

	fmt.Fprintf(a.out, "Updated entry #%d.\n", entry.ID)
	if err := a.refresh(ctx); err != nil {
		log.Printf("warning: could not refresh garage: %v", err)
	}
	return nil
}

// draftFromEntry seeds an edit draft: facts are copied, persisted photos
// move to ExistingPhotos, and tags and mods re-enter through the draft so
// deduplication keeps holding for anything added on top.
func draftFromEntry(entry *models.CarEntry) *assembler.Draft {
	d := &assembler.Draft{Entry: *entry}
	d.ExistingPhotos = append([]models.Photo(nil), entry.Photos...)
	d.Entry.Photos = nil
	d.Entry.Tags = nil
	d.Entry.Mods = nil

	for _, t := range entry.Tags {
		d.AddTag(t)
	}
	for _, m := range entry.Mods {
		d.AddMod(m)
	}
	return d
}

// editFacts re-prompts every car fact, showing the current value. An empty
// line keeps it; for year and base cost an explicit zero does too.
func (a *App) editFacts(d *assembler.Draft) error {
	prompts := []struct {
		label string
		dst   *string
	}{
		{"Entry name", &d.Entry.Name},
		{"Make", &d.Entry.Make},
		{"Model", &d.Entry.Model},
		{"Trim", &d.Entry.Trim},
		{"Color", &d.Entry.Color},
		{"Engine", &d.Entry.Engine},
		{"Transmission", &d.Entry.Transmission},
		{"Drivetrain", &d.Entry.Drivetrain},
		{"Category", &d.Entry.Category},
		{"Region", &d.Entry.Region},
		{"Description", &d.Entry.Description},
	}

	for _, p := range prompts {
		v, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s] (empty to keep)", p.label, *p.dst), a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*p.dst = v
		}
	}

	year, err := GetInt(a.reader, fmt.Sprintf("Year [%d] (empty to keep)", d.Entry.Year), a.out)
	if err != nil {
		return err
	}
	if year != 0 {
		d.Entry.Year = year
	}

	cost, err := GetFloat(a.reader, fmt.Sprintf("Base cost [%.2f] (empty to keep)", d.Entry.BaseCost), a.out)
	if err != nil {
		return err
	}
	if cost != 0 {
		d.Entry.BaseCost = cost
	}

	return nil
}

// reviewExistingPhotos lists the persisted photos and lets the user move
// the main-photo mark to a different one. Newly staged photos cannot be
// main here; commit settles the designation across the merged list.
func (a *App) reviewExistingPhotos(d *assembler.Draft) error {
	if len(d.ExistingPhotos) == 0 {
		return nil
	}

	for i, p := range d.ExistingPhotos {
		marker := " "
		if p.IsMainPhoto {
			marker = "*"
		}
		fmt.Fprintf(a.out, "  %d)%s %s\n", i+1, marker, a.api.PhotoURL(p.Key))
	}

	n, err := GetInt(a.reader, "Main photo number (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if n < 1 || n > len(d.ExistingPhotos) {
		fmt.Fprintln(a.out, "No such photo.")
		return nil
	}

	for i := range d.ExistingPhotos {
		d.ExistingPhotos[i].IsMainPhoto = i == n-1
	}
	return nil
}
