// Package models defines server-side data models persisted in the database
// and the validation rules applied at the write path.
package models

import "time"

// Photo is one image owned by a car, addressed by its object-storage key.
// Position preserves the order the client committed the photos in.
type Photo struct {
	ID       int64  `db:"id"`
	CarID    int64  `db:"car_id"`
	Key      string `db:"storage_key"`
	IsMain   bool   `db:"is_main"`
	Position int    `db:"position"`
}

// Mod is one modification row. Catalog rows ship with the service and are
// shared across cars; custom rows (IsCustom) are owned by the car that
// created them and are removed when no link references them anymore.
type Mod struct {
	ID          int64   `db:"id"`
	LegacyID    int64   `db:"legacy_id"`
	Brand       string  `db:"brand"`
	Type        string  `db:"mod_type"`
	PartNumber  string  `db:"part_number"`
	Description string  `db:"description"`
	Category    string  `db:"category"`
	Cost        float64 `db:"cost"`
	Link        string  `db:"link"`
	IsCustom    bool    `db:"is_custom"`
}

// Car is one garage entry together with its owned collections. TotalMods
// and TotalCost are derived server-side on every write; client-supplied
// values are ignored.
type Car struct {
	ID           int64   `db:"id"`
	OwnerID      string  `db:"owner_id"`
	Name         string  `db:"name"`
	Make         string  `db:"make"`
	Model        string  `db:"model"`
	Year         int     `db:"year"`
	Trim         string  `db:"trim"`
	Color        string  `db:"color"`
	Engine       string  `db:"engine"`
	Transmission string  `db:"transmission"`
	Drivetrain   string  `db:"drivetrain"`
	BaseCost     float64 `db:"base_cost"`
	Horsepower   *int    `db:"horsepower"`
	Torque       *int    `db:"torque"`
	Category     string  `db:"category"`
	Region       string  `db:"region"`
	Description  string  `db:"description"`

	TotalMods int     `db:"total_mods"`
	TotalCost float64 `db:"total_cost"`

	Photos []Photo
	Tags   []string
	Mods   []Mod

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// RecomputeTotals rederives the mod count and the running cost total from
// the attached mods and the base cost.
func (c *Car) RecomputeTotals() {
	c.TotalMods = len(c.Mods)
	total := c.BaseCost
	for _, m := range c.Mods {
		total += m.Cost
	}
	c.TotalCost = total
}

// SettleMainPhoto enforces the single-main invariant: the first photo
// marked main wins and later marks are dropped; if none is marked the
// first photo is promoted.
func (c *Car) SettleMainPhoto() {
	seen := false
	for i := range c.Photos {
		if c.Photos[i].IsMain {
			if seen {
				c.Photos[i].IsMain = false
			}
			seen = true
		}
	}
	if !seen && len(c.Photos) > 0 {
		c.Photos[0].IsMain = true
	}
}
