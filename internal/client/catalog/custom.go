package catalog

import (
	"fmt"
	"strings"

	"github.com/dkomarov/garagehub/internal/client/models"
	"github.com/dkomarov/garagehub/internal/common"
)

// CustomModInput carries the free-text fields of the authoring form that are
// not already held by the filter state.
type CustomModInput struct {
	PartNumber  string
	Description string
}

// BuildCustomMod validates the authoring form and constructs an ad-hoc mod.
// Type and brand may come from a committed selection or from in-progress
// search text, whichever the user typed last. Validation is fail-fast: the
// first missing field is returned as a user-facing message and later fields
// are not inspected.
//
// On success the mod has cost zero, trimmed fields and IsCustom set, and the
// filter is reset so the form is ready for the next mod.
func BuildCustomMod(f *FilterState, in CustomModInput) (models.Mod, error) {
	if f.Category == "" {
		return models.Mod{}, fmt.Errorf("%w: please select a category", common.ErrValidation)
	}

	typ := firstNonEmpty(f.Type, f.TypeSearch)
	if typ == "" {
		return models.Mod{}, fmt.Errorf("%w: please enter or select a type", common.ErrValidation)
	}

	brand := firstNonEmpty(f.Brand, f.BrandSearch)
	if brand == "" {
		return models.Mod{}, fmt.Errorf("%w: please enter or select a brand", common.ErrValidation)
	}

	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return models.Mod{}, fmt.Errorf("%w: please enter a description", common.ErrValidation)
	}

	m := models.Mod{
		Brand:       brand,
		Type:        typ,
		PartNumber:  strings.TrimSpace(in.PartNumber),
		Description: desc,
		Category:    strings.TrimSpace(f.Category),
		Cost:        0,
		IsCustom:    true,
	}

	f.Reset()

	return m, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
