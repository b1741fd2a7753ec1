// Package models defines the wire types exchanged with the entry store and
// the identity rules for mods.
package models

import "time"

// Photo is one image owned by a car entry, addressed by its object-storage
// key. Within one entry at most one photo has IsMainPhoto set while editing;
// after a successful commit exactly one does (if any photos exist).
type Photo struct {
	Key         string `json:"key"`
	IsMainPhoto bool   `json:"isMainPhoto"`
}

// CarEntry is one car build record owned by a user. The ID is assigned by
// the store on creation and immutable afterwards. TotalMods and TotalCost
// are derived: mod count and base cost plus the sum of mod costs.
type CarEntry struct {
	ID           int64   `json:"id,omitempty"`
	OwnerID      string  `json:"ownerID,omitempty"`
	Name         string  `json:"name,omitempty"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year,omitempty"`
	Trim         string  `json:"trim,omitempty"`
	Color        string  `json:"color,omitempty"`
	Engine       string  `json:"engine,omitempty"`
	Transmission string  `json:"transmission,omitempty"`
	Drivetrain   string  `json:"drivetrain,omitempty"`
	BaseCost     float64 `json:"baseCost"`
	Horsepower   *int    `json:"horsepower,omitempty"`
	Torque       *int    `json:"torque,omitempty"`
	Category     string  `json:"category"`
	Region       string  `json:"region,omitempty"`
	Description  string  `json:"description,omitempty"`

	TotalMods int     `json:"totalMods"`
	TotalCost float64 `json:"totalCost"`

	Photos []Photo  `json:"photos"`
	Tags   []string `json:"tags"`
	Mods   []Mod    `json:"mods"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// MainPhoto returns the photo currently marked main, or nil.
func (c *CarEntry) MainPhoto() *Photo {
	for i := range c.Photos {
		if c.Photos[i].IsMainPhoto {
			return &c.Photos[i]
		}
	}
	return nil
}
