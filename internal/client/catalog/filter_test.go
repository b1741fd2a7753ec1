package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkomarov/garagehub/internal/client/models"
	"github.com/dkomarov/garagehub/internal/common"
)

func testSnapshot() []models.Mod {
	return []models.Mod{
		{ID: 1, Category: "Engine", Type: "Turbo", Brand: "Brand A", Description: "GT28 turbo kit", PartNumber: "TA-100", Cost: 2500},
		{ID: 2, Category: "Engine", Type: "Turbo", Brand: "Brand C", Description: "Big single turbo", PartNumber: "TC-200", Cost: 3100},
		{ID: 3, Category: "Engine", Type: "Intake", Brand: "Brand A", Description: "Cold air intake", PartNumber: "IA-300", Cost: 180},
		{ID: 4, Category: "Exhaust", Type: "Cat-back", Brand: "Brand D", Description: "Titanium cat-back", PartNumber: "CD-400", Cost: 900},
		{ID: 5, Category: "Suspension", Type: "Coilovers", Brand: "Brand E", Description: "Street coilovers", PartNumber: "SE-500", Cost: 1200},
		// Custom mods in a snapshot must be invisible to the filter.
		{Category: "Engine", Type: "Nitrous", Brand: "Homebrew", Description: "Wet kit", IsCustom: true},
	}
}

func TestFilterState_CategoriesSortedDistinct(t *testing.T) {
	f := NewFilterState(testSnapshot())
	assert.Equal(t, []string{"Engine", "Exhaust", "Suspension"}, f.Categories())
}

func TestFilterState_SetCategoryValidates(t *testing.T) {
	f := NewFilterState(testSnapshot())

	err := f.SetCategory("Aero")
	require.ErrorIs(t, err, common.ErrValidation)

	require.NoError(t, f.SetCategory("engine"), "category match is case-insensitive")
	assert.Equal(t, "engine", f.Category)
}

func TestFilterState_SetCategoryClearsDownstream(t *testing.T) {
	f := NewFilterState(testSnapshot())
	require.NoError(t, f.SetCategory("Engine"))
	f.SetType("Turbo")
	f.SetBrand("Brand A")
	f.SetTypeSearch("tur")
	f.SetBrandSearch("bra")

	require.NoError(t, f.SetCategory("Exhaust"))

	assert.Empty(t, f.Type)
	assert.Empty(t, f.Brand)
	assert.Empty(t, f.TypeSearch)
	assert.Empty(t, f.BrandSearch)
	assert.Equal(t, []string{"Brand D"}, f.AvailableBrands(), "brands must reflect only the new category")
}

func TestFilterState_AvailableTypesAndBrands(t *testing.T) {
	f := NewFilterState(testSnapshot())
	require.NoError(t, f.SetCategory("Engine"))

	assert.Equal(t, []string{"Intake", "Turbo"}, f.AvailableTypes())
	assert.Equal(t, []string{"Brand A", "Brand C"}, f.AvailableBrands())

	f.SetType("Turbo")
	assert.Equal(t, []string{"Brand A", "Brand C"}, f.AvailableBrands())

	f.SetType("Intake")
	assert.Equal(t, []string{"Brand A"}, f.AvailableBrands())
}

func TestFilterState_SetTypeClearsBrand(t *testing.T) {
	f := NewFilterState(testSnapshot())
	require.NoError(t, f.SetCategory("Engine"))
	f.SetBrand("Brand C")

	f.SetType("Intake")

	assert.Empty(t, f.Brand)
}

func TestFilterState_FilteredModsByDescriptionOrPartNumber(t *testing.T) {
	f := NewFilterState(testSnapshot())
	require.NoError(t, f.SetCategory("Engine"))

	f.SetDescription("turbo")
	ids := modIDs(f.FilteredMods())
	assert.Equal(t, []int64{1, 2}, ids)

	f.SetDescription("ta-100")
	ids = modIDs(f.FilteredMods())
	assert.Equal(t, []int64{1}, ids, "part number must match too")
}

func TestFilterState_AuthoringRequiresCategory(t *testing.T) {
	f := NewFilterState(testSnapshot())
	assert.False(t, f.Authoring(), "no category committed yet")
}

func TestFilterState_AuthoringOnNoTypeMatch(t *testing.T) {
	// Category "Engine" has brand "Brand A" with type "Turbo" only.
	snapshot := []models.Mod{
		{ID: 1, Category: "Engine", Type: "Turbo", Brand: "Brand A", Description: "kit"},
	}
	f := NewFilterState(snapshot)
	require.NoError(t, f.SetCategory("Engine"))
	assert.False(t, f.Authoring())

	f.SetTypeSearch("Supercharger")
	assert.True(t, f.Authoring(), "unmatched type search must flip to authoring")
}

func TestFilterState_AuthoringOnNoBrandOrModMatch(t *testing.T) {
	f := NewFilterState(testSnapshot())
	require.NoError(t, f.SetCategory("Engine"))

	f.SetBrandSearch("Brand Z")
	assert.True(t, f.Authoring())

	f.SetBrand("Brand A") // commit clears the search text
	assert.Empty(t, f.BrandSearch)
	assert.False(t, f.Authoring(), "committed matching brand must not author")

	f.SetDescription("does-not-exist-anywhere")
	assert.True(t, f.Authoring(), "no mods for the description filter")
}

func TestFilterState_EmptySnapshotForcesAuthoring(t *testing.T) {
	f := NewFilterState(nil)

	require.NoError(t, f.SetCategory("Engine"), "any category is accepted on an empty snapshot")
	assert.True(t, f.Authoring())
}

func TestFilterState_Reset(t *testing.T) {
	f := NewFilterState(testSnapshot())
	require.NoError(t, f.SetCategory("Engine"))
	f.SetType("Turbo")
	f.SetDescription("kit")
	f.SetBrandSearch("bra")

	f.Reset()

	assert.Empty(t, f.Category)
	assert.Empty(t, f.Type)
	assert.Empty(t, f.Brand)
	assert.Empty(t, f.Description)
	assert.Empty(t, f.TypeSearch)
	assert.Empty(t, f.BrandSearch)
	assert.Equal(t, []string{"Engine", "Exhaust", "Suspension"}, f.Categories(), "snapshot survives a reset")
}

func modIDs(mods []models.Mod) []int64 {
	ids := make([]int64, 0, len(mods))
	for _, m := range mods {
		ids = append(ids, m.ID)
	}
	return ids
}
