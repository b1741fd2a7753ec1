package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dkomarov/garagehub/internal/client/assembler"
	"github.com/dkomarov/garagehub/internal/client/catalog"
	"github.com/dkomarov/garagehub/internal/client/upload"
	"github.com/dkomarov/garagehub/internal/common"
)

// Add runs the assembly wizard: car facts, tags, mods (catalog selection
// with fall-through to custom authoring), photos, then a single commit.
// Nothing touches the network until the final commit except the catalog
// snapshot fetch.
func (a *App) Add(ctx context.Context) error {
	d := &assembler.Draft{}

	if err := a.askFacts(d); err != nil {
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

	pl, err := a.askPhotos(d)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	entry, err := a.assembler.Create(ctx, d, pl)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			fmt.Fprintf(a.out, "Entry not saved: %v\n", err)
		} else {
			log.Printf("Error: %s", err.Error())
		}
		return err
	}

	fmt.Fprintf(a.out, "Saved entry #%d.\n", entry.ID)
	if err := a.refresh(ctx); err != nil {
		log.Printf("warning: could not refresh garage: %v", err)
	}
	return nil
}

func (a *App) askFacts(d *assembler.Draft) error {
	prompts := []struct {
		label string
		dst   *string
	}{
		{"Entry name (optional)", &d.Entry.Name},
		{"Make", &d.Entry.Make},
		{"Model", &d.Entry.Model},
		{"Trim (optional)", &d.Entry.Trim},
		{"Color (optional)", &d.Entry.Color},
		{"Engine (optional)", &d.Entry.Engine},
		{"Transmission (optional)", &d.Entry.Transmission},
		{"Drivetrain (optional)", &d.Entry.Drivetrain},
		{"Category (e.g. street, track, show)", &d.Entry.Category},
		{"Region (optional)", &d.Entry.Region},
		{"Description (optional)", &d.Entry.Description},
	}

	for _, p := range prompts {
		v, err := GetSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	year, err := GetInt(a.reader, "Year", a.out)
	if err != nil {
		return err
	}
	d.Entry.Year = year

	cost, err := GetFloat(a.reader, "Base cost", a.out)
	if err != nil {
		return err
	}
	d.Entry.BaseCost = cost

	return nil
}

func (a *App) askTags(d *assembler.Draft) error {
	for {
		tag, err := GetSimpleText(a.reader, "Add tag (empty line to finish)", a.out)
		if err != nil {
			return err
		}
		if tag == "" {
			return nil
		}
		d.AddTag(tag)
	}
}

// askMods loops the cascading catalog filter: category, then type, then
// brand, each narrowing the next. Free text at the type or brand step is
// kept as search text; when it matches nothing the flow falls through to
// custom authoring without restarting.
func (a *App) askMods(ctx context.Context, d *assembler.Draft) error {
	mods, err := a.api.CatalogMods(ctx, "")
	if err != nil {
		return err
	}
	f := catalog.NewFilterState(mods)

	for {
		cats := f.Categories()
		if len(cats) > 0 {
			fmt.Fprintf(a.out, "Mod categories: %s\n", strings.Join(cats, ", "))
		}
		cat, err := GetSimpleText(a.reader, "Mod category (empty line to finish mods)", a.out)
		if err != nil {
			return err
		}
		if cat == "" {
			return nil
		}
		if err := f.SetCategory(cat); err != nil {
			fmt.Fprintf(a.out, "%v\n", err)
			continue
		}

		if err := a.pickOrAuthorMod(f, d); err != nil {
			return err
		}
	}
}

func (a *App) pickOrAuthorMod(f *catalog.FilterState, d *assembler.Draft) error {
	if !f.Authoring() {
		if err := a.narrow(f); err != nil {
			return err
		}
	}

	if f.Authoring() {
		return a.authorCustomMod(f, d)
	}

	picks := f.FilteredMods()
	for i, m := range picks {
		fmt.Fprintf(a.out, "  %d) %s %s %s ($%.2f)\n", i+1, m.Brand, m.Type, m.Description, m.Cost)
	}
	choice, err := GetSimpleText(a.reader, "Pick a mod by number, or 'c' to add a custom one", a.out)
	if err != nil {
		return err
	}
	if choice == "c" {
		return a.authorCustomMod(f, d)
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(picks) {
		fmt.Fprintln(a.out, "No such mod.")
		return nil
	}

	if d.AddMod(picks[n-1]) {
		fmt.Fprintln(a.out, "Mod added.")
	} else {
		fmt.Fprintln(a.out, "Already in the build.")
	}
	f.Reset()
	return nil
}

// narrow walks the type then brand steps. Input matching an available value
// commits a selection; anything else becomes search text, which may empty
// the next level and flip the filter into authoring mode.
func (a *App) narrow(f *catalog.FilterState) error {
	types := f.AvailableTypes()
	fmt.Fprintf(a.out, "Types: %s\n", strings.Join(types, ", "))
	t, err := GetSimpleText(a.reader, "Type (pick one or type to search)", a.out)
	if err != nil {
		return err
	}
	if matchFold(types, t) != "" {
		f.SetType(matchFold(types, t))
	} else if t != "" {
		f.SetTypeSearch(t)
	}
	if f.Authoring() {
		return nil
	}

	brands := f.AvailableBrands()
	fmt.Fprintf(a.out, "Brands: %s\n", strings.Join(brands, ", "))
	b, err := GetSimpleText(a.reader, "Brand (pick one or type to search)", a.out)
	if err != nil {
		return err
	}
	if matchFold(brands, b) != "" {
		f.SetBrand(matchFold(brands, b))
	} else if b != "" {
		f.SetBrandSearch(b)
	}
	return nil
}

// authorCustomMod finishes the flow in authoring mode: whatever the user
// already typed for type and brand is kept, and only the missing pieces are
// prompted for.
func (a *App) authorCustomMod(f *catalog.FilterState, d *assembler.Draft) error {
	if f.Type == "" && f.TypeSearch == "" {
		t, err := GetSimpleText(a.reader, "Type", a.out)
		if err != nil {
			return err
		}
		f.SetTypeSearch(t)
	}
	if f.Brand == "" && f.BrandSearch == "" {
		b, err := GetSimpleText(a.reader, "Brand", a.out)
		if err != nil {
			return err
		}
		f.SetBrandSearch(b)
	}

	part, err := GetSimpleText(a.reader, "Part number (optional)", a.out)
	if err != nil {
		return err
	}
	desc, err := GetSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	m, err := catalog.BuildCustomMod(f, catalog.CustomModInput{PartNumber: part, Description: desc})
	if err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
		return nil
	}

	if d.AddMod(m) {
		fmt.Fprintln(a.out, "Custom mod added.")
	} else {
		fmt.Fprintln(a.out, "Already in the build.")
	}
	return nil
}

// askPhotos stages local files into an upload pipeline. Files are read
// eagerly so a bad path surfaces now, not at commit time.
func (a *App) askPhotos(d *assembler.Draft) (*upload.Pipeline, error) {
	pl := upload.NewPipeline(a.api, len(d.ExistingPhotos),
		upload.WithProgress(func(index, percent int) {
			if percent == 100 {
				fmt.Fprintf(a.out, "photo %d uploaded\n", index+1)
			}
		}))

	for {
		path, err := GetSimpleText(a.reader, "Photo file path (empty line to finish)", a.out)
		if err != nil {
			return nil, err
		}
		if path == "" {
			return pl, nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(a.out, "cannot read %s: %v\n", path, err)
			continue
		}

		ct := mime.TypeByExtension(filepath.Ext(path))
		if ct == "" {
			ct = "application/octet-stream"
		}

		if err := pl.Stage(upload.File{Name: filepath.Base(path), ContentType: ct, Data: data}); err != nil {
			fmt.Fprintf(a.out, "%v\n", err)
			return pl, nil
		}
		fmt.Fprintf(a.out, "Staged %s (%d photos pending).\n", filepath.Base(path), pl.Staged())
	}
}

func matchFold(list []string, v string) string {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return s
		}
	}
	return ""
}
