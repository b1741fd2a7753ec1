package models

import (
	"fmt"
	"strings"

	"github.com/dkomarov/garagehub/internal/common"
)

// TagVocabulary is the fixed set of tags an entry may carry. Tags outside
// this list fail validation at the write path.
var TagVocabulary = []string{
	"daily",
	"show",
	"track",
	"drift",
	"drag",
	"offroad",
	"classic",
	"jdm",
	"euro",
	"muscle",
	"stance",
	"sleeper",
	"restomod",
	"project",
}

var tagSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(TagVocabulary))
	for _, t := range TagVocabulary {
		m[t] = struct{}{}
	}
	return m
}()

// NormalizeTags lowercases and deduplicates tags, preserving first-seen
// order. An unknown tag yields a wrapped common.ErrValidation.
func NormalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := tagSet[t]; !ok {
			return nil, fmt.Errorf("%w: unknown tag %q", common.ErrValidation, t)
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

// Validate checks the facts an entry cannot be committed without.
func (c *Car) Validate() error {
	if strings.TrimSpace(c.Make) == "" {
		return fmt.Errorf("%w: make is required", common.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: model is required", common.ErrValidation)
	}
	if strings.TrimSpace(c.Category) == "" {
		return fmt.Errorf("%w: category is required", common.ErrValidation)
	}
	if len(c.Photos) == 0 {
		return fmt.Errorf("%w: at least one photo is required", common.ErrValidation)
	}
	if len(c.Photos) > common.MaxPhotosPerEntry {
		return fmt.Errorf("%w: at most %d photos per entry", common.ErrValidation, common.MaxPhotosPerEntry)
	}
	return nil
}
