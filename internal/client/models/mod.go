package models

import (
	"strconv"
	"strings"
)

// Mod is one modification attached to a car entry. Catalog mods carry a
// stable numeric ID assigned by the shared catalog; custom mods carry no ID
// and are identified by their content (see Identity).
type Mod struct {
	ID          int64   `json:"id,omitempty"`
	LegacyID    int64   `json:"modID,omitempty"`
	Brand       string  `json:"brand"`
	Type        string  `json:"type,omitempty"`
	PartNumber  string  `json:"partNumber,omitempty"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Cost        float64 `json:"cost"`
	Link        string  `json:"link,omitempty"`
	IsCustom    bool    `json:"isCustom,omitempty"`
}

// Sentinels substituted for absent fields in a custom-mod identity.
const (
	identUnknown = "unknown"
	identNoType  = "no-type"
	identNoPart  = "no-part"
)

// descIdentityLen is how many characters of the normalized description
// participate in a custom-mod identity.
const descIdentityLen = 20

// Identity returns a string identifier stable across renders and catalog
// reloads, used for set-membership tests and table keys.
//
// Catalog mods map to "id-<id>" (or "modID-<legacyID>" for catalogs imported
// from the legacy schema), so they can never collide with custom mods, whose
// identity is a composite of normalized descriptive fields. Two custom mods
// with the same brand, category, type, part number, cost and first 20
// description characters collide on purpose: that is what blocks accidental
// duplicate authoring.
func (m Mod) Identity() string {
	if m.ID != 0 {
		return "id-" + strconv.FormatInt(m.ID, 10)
	}
	if m.LegacyID != 0 {
		return "modID-" + strconv.FormatInt(m.LegacyID, 10)
	}

	desc := normalizeIdentityField(m.Description, identUnknown)
	if r := []rune(desc); len(r) > descIdentityLen {
		desc = string(r[:descIdentityLen])
	}

	parts := []string{
		normalizeIdentityField(m.Brand, identUnknown),
		normalizeIdentityField(m.Category, identUnknown),
		normalizeIdentityField(m.Type, identNoType),
		normalizeIdentityField(m.PartNumber, identNoPart),
		strconv.FormatFloat(m.Cost, 'f', -1, 64),
		desc,
	}
	return strings.Join(parts, "|")
}

// normalizeIdentityField lower-cases s and collapses runs of whitespace to a
// single space; empty input yields the sentinel.
func normalizeIdentityField(s, sentinel string) string {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return sentinel
	}
	return strings.Join(fields, " ")
}

// ModSet is an ordered collection of mods with identity-based deduplication.
// The zero value is ready to use.
type ModSet struct {
	mods []Mod
	seen map[string]struct{}
}

// Add appends m unless a mod with the same identity is already present.
// It reports whether the mod was added; a duplicate add is a silent no-op.
func (s *ModSet) Add(m Mod) bool {
	id := m.Identity()
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.mods = append(s.mods, m)
	return true
}

// Remove drops the mod with the given identity, if present.
func (s *ModSet) Remove(identity string) {
	if _, ok := s.seen[identity]; !ok {
		return
	}
	delete(s.seen, identity)
	for i, m := range s.mods {
		if m.Identity() == identity {
			s.mods = append(s.mods[:i], s.mods[i+1:]...)
			return
		}
	}
}

// Contains reports whether a mod with the same identity is in the set.
func (s *ModSet) Contains(m Mod) bool {
	_, ok := s.seen[m.Identity()]
	return ok
}

// Mods returns the mods in insertion order.
func (s *ModSet) Mods() []Mod {
	return s.mods
}

// Len returns the number of mods in the set.
func (s *ModSet) Len() int {
	return len(s.mods)
}
