// Package catalog implements the cascading mod-catalog filter
// (category → type → brand → free text) and the custom-mod authoring form
// that the filter falls through to when nothing matches.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dkomarov/garagehub/internal/client/models"
	"github.com/dkomarov/garagehub/internal/common"
)

// FilterState holds the committed selections and in-progress search text of
// the cascading filter over one in-memory catalog snapshot. All transitions
// go through the Set* methods, which atomically clear dependent state, so a
// FilterState can never hold a stale cross-category combination.
//
// Custom mods in the snapshot are ignored: the filter browses the shared
// catalog only.
type FilterState struct {
	snapshot []models.Mod

	Category    string
	Type        string
	Brand       string
	Description string

	// Uncommitted search text, present only until the corresponding
	// selection is made. SetType clears TypeSearch and SetBrand clears
	// BrandSearch, so search text never shadows a committed selection.
	TypeSearch  string
	BrandSearch string

	categories []string // lazily computed, sorted
}

// NewFilterState builds a filter over the given catalog snapshot. An empty
// snapshot is legal; it forces authoring mode as soon as a category is set.
func NewFilterState(snapshot []models.Mod) *FilterState {
	return &FilterState{snapshot: snapshot}
}

// Categories returns the distinct categories of non-custom catalog mods,
// sorted ascending. The list is computed once and cached.
func (f *FilterState) Categories() []string {
	if f.categories != nil {
		return f.categories
	}
	f.categories = f.distinct(func(m models.Mod) string { return m.Category }, func(models.Mod) bool { return true })
	return f.categories
}

// SetCategory commits a category selection and resets the type and brand
// selections along with their search text. When the snapshot is non-empty
// the category must be one of Categories(); with an empty snapshot any
// category is accepted and the filter goes straight to authoring mode.
func (f *FilterState) SetCategory(c string) error {
	c = strings.TrimSpace(c)
	if c == "" {
		return fmt.Errorf("%w: category is required", common.ErrValidation)
	}
	if cats := f.Categories(); len(cats) > 0 && !containsFold(cats, c) {
		return fmt.Errorf("%w: unknown category %q", common.ErrValidation, c)
	}
	f.Category = c
	f.Type = ""
	f.Brand = ""
	f.TypeSearch = ""
	f.BrandSearch = ""
	return nil
}

// SetType commits a type selection, clearing the type search text and the
// downstream brand selection.
func (f *FilterState) SetType(t string) {
	f.Type = strings.TrimSpace(t)
	f.TypeSearch = ""
	f.Brand = ""
	f.BrandSearch = ""
}

// SetBrand commits a brand selection and clears the brand search text.
func (f *FilterState) SetBrand(b string) {
	f.Brand = strings.TrimSpace(b)
	f.BrandSearch = ""
}

// SetDescription sets the free-text filter matched against descriptions and
// part numbers.
func (f *FilterState) SetDescription(d string) {
	f.Description = strings.TrimSpace(d)
}

// SetTypeSearch records in-progress type search text (before a selection).
func (f *FilterState) SetTypeSearch(s string) {
	f.TypeSearch = s
}

// SetBrandSearch records in-progress brand search text (before a selection).
func (f *FilterState) SetBrandSearch(s string) {
	f.BrandSearch = s
}

// Reset clears every selection, search text and the description filter,
// leaving the snapshot in place. Called after a custom mod is built so the
// form is ready for the next one.
func (f *FilterState) Reset() {
	f.Category = ""
	f.Type = ""
	f.Brand = ""
	f.Description = ""
	f.TypeSearch = ""
	f.BrandSearch = ""
}

// AvailableTypes returns the distinct types of catalog mods in the committed
// category, narrowed by any in-progress type search text, sorted ascending.
func (f *FilterState) AvailableTypes() []string {
	search := strings.TrimSpace(f.TypeSearch)
	types := f.distinct(func(m models.Mod) string { return m.Type }, func(m models.Mod) bool {
		return strings.EqualFold(m.Category, f.Category)
	})
	if search == "" {
		return types
	}
	out := types[:0]
	for _, t := range types {
		if containsFoldSub(t, search) {
			out = append(out, t)
		}
	}
	return out
}

// AvailableBrands returns the distinct brands of catalog mods matching the
// committed category and, if set, type, narrowed by any in-progress brand
// search text, sorted ascending.
func (f *FilterState) AvailableBrands() []string {
	search := strings.TrimSpace(f.BrandSearch)
	brands := f.distinct(func(m models.Mod) string { return m.Brand }, func(m models.Mod) bool {
		if !strings.EqualFold(m.Category, f.Category) {
			return false
		}
		return f.Type == "" || strings.EqualFold(m.Type, f.Type)
	})
	if search == "" {
		return brands
	}
	out := brands[:0]
	for _, b := range brands {
		if containsFoldSub(b, search) {
			out = append(out, b)
		}
	}
	return out
}

// FilteredMods returns the catalog mods matching every committed selection
// and, when description text is present, whose description or part number
// contains it (case-insensitive substring).
func (f *FilterState) FilteredMods() []models.Mod {
	var out []models.Mod
	for _, m := range f.snapshot {
		if m.IsCustom {
			continue
		}
		if f.Category != "" && !strings.EqualFold(m.Category, f.Category) {
			continue
		}
		if f.Type != "" && !strings.EqualFold(m.Type, f.Type) {
			continue
		}
		if f.Brand != "" && !strings.EqualFold(m.Brand, f.Brand) {
			continue
		}
		if f.Description != "" &&
			!containsFoldSub(m.Description, f.Description) &&
			!containsFoldSub(m.PartNumber, f.Description) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Authoring reports whether the filter denotes "author a new mod" rather
// than "browse existing": a category is committed and the cascade, with any
// in-progress search text applied at its own level, yields no types, no
// brands, or no mods. Because Set* clears search text on selection, stray
// search text can never flip the mode while a committed selection still
// matches. Re-evaluate after every keystroke or selection change.
func (f *FilterState) Authoring() bool {
	if f.Category == "" {
		return false
	}
	if len(f.AvailableTypes()) == 0 {
		return true
	}
	if len(f.AvailableBrands()) == 0 {
		return true
	}
	return len(f.FilteredMods()) == 0
}

// distinct collects the non-empty values of field over non-custom snapshot
// mods passing keep, deduplicated case-insensitively, sorted ascending.
func (f *FilterState) distinct(field func(models.Mod) string, keep func(models.Mod) bool) []string {
	seen := make(map[string]string)
	for _, m := range f.snapshot {
		if m.IsCustom || !keep(m) {
			continue
		}
		v := strings.TrimSpace(field(m))
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; !ok {
			seen[key] = v
		}
	}
	out := make([]string, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func containsFoldSub(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
