package http

import (
	"time"

	"github.com/dkomarov/garagehub/internal/server/models"
)

// Wire types. Field names follow the contract the client binds to; totals
// are echoed but never trusted on input.

type photoDTO struct {
	Key         string `json:"key"`
	IsMainPhoto bool   `json:"isMainPhoto"`
}

type modDTO struct {
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

type carDTO struct {
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

	Photos []photoDTO `json:"photos"`
	Tags   []string   `json:"tags"`
	Mods   []modDTO   `json:"mods"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

func toModDTO(m models.Mod) modDTO {
	return modDTO{
		ID:          m.ID,
		LegacyID:    m.LegacyID,
		Brand:       m.Brand,
		Type:        m.Type,
		PartNumber:  m.PartNumber,
		Description: m.Description,
		Category:    m.Category,
		Cost:        m.Cost,
		Link:        m.Link,
		IsCustom:    m.IsCustom,
	}
}

func toCarDTO(c *models.Car) carDTO {
	out := carDTO{
		ID:           c.ID,
		OwnerID:      c.OwnerID,
		Name:         c.Name,
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		Trim:         c.Trim,
		Color:        c.Color,
		Engine:       c.Engine,
		Transmission: c.Transmission,
		Drivetrain:   c.Drivetrain,
		BaseCost:     c.BaseCost,
		Horsepower:   c.Horsepower,
		Torque:       c.Torque,
		Category:     c.Category,
		Region:       c.Region,
		Description:  c.Description,
		TotalMods:    c.TotalMods,
		TotalCost:    c.TotalCost,
		Photos:       make([]photoDTO, 0, len(c.Photos)),
		Tags:         c.Tags,
		Mods:         make([]modDTO, 0, len(c.Mods)),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	for _, p := range c.Photos {
		out.Photos = append(out.Photos, photoDTO{Key: p.Key, IsMainPhoto: p.IsMain})
	}
	for _, m := range c.Mods {
		out.Mods = append(out.Mods, toModDTO(m))
	}
	return out
}

func (d carDTO) toModel() *models.Car {
	c := &models.Car{
		ID:           d.ID,
		Name:         d.Name,
		Make:         d.Make,
		Model:        d.Model,
		Year:         d.Year,
		Trim:         d.Trim,
		Color:        d.Color,
		Engine:       d.Engine,
		Transmission: d.Transmission,
		Drivetrain:   d.Drivetrain,
		BaseCost:     d.BaseCost,
		Horsepower:   d.Horsepower,
		Torque:       d.Torque,
		Category:     d.Category,
		Region:       d.Region,
		Description:  d.Description,
		Tags:         d.Tags,
	}
	for _, p := range d.Photos {
		c.Photos = append(c.Photos, models.Photo{Key: p.Key, IsMain: p.IsMainPhoto})
	}
	for _, m := range d.Mods {
		c.Mods = append(c.Mods, models.Mod{
			ID:          m.ID,
			LegacyID:    m.LegacyID,
			Brand:       m.Brand,
			Type:        m.Type,
			PartNumber:  m.PartNumber,
			Description: m.Description,
			Category:    m.Category,
			Cost:        m.Cost,
			Link:        m.Link,
			IsCustom:    m.IsCustom,
		})
	}
	return c
}
