package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dkomarov/garagehub/internal/client/models"
)

// List refreshes the garage cache and prints one line per entry.
func (a *App) List(ctx context.Context) error {
	if err := a.refresh(ctx); err != nil {
		log.Println(err.Error())
		return err
	}

	if len(a.cars) == 0 {
		fmt.Fprintln(a.out, "Garage is empty.")
		return nil
	}

	for _, c := range a.cars {
		fmt.Fprintln(a.out, entrySummary(&c))
	}
	return nil
}

// Show prints the full detail of one entry by id.
func (a *App) Show(ctx context.Context) error {
	id, err := GetInt(a.reader, "Enter entry id to show", a.out)
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

	fmt.Fprintln(a.out, entrySummary(entry))
	if entry.Description != "" {
		fmt.Fprintf(a.out, "  %s\n", entry.Description)
	}
	if len(entry.Tags) > 0 {
		fmt.Fprintf(a.out, "  tags: %v\n", entry.Tags)
	}
	for _, m := range entry.Mods {
		fmt.Fprintf(a.out, "  mod: [%s] %s %s ($%.2f)\n", m.Category, m.Brand, m.Description, m.Cost)
	}
	for _, p := range entry.Photos {
		marker := " "
		if p.IsMainPhoto {
			marker = "*"
		}
		fmt.Fprintf(a.out, "  photo%s %s\n", marker, a.api.PhotoURL(p.Key))
	}
	return nil
}

func (a *App) findCar(id int64) *models.CarEntry {
	for i := range a.cars {
		if a.cars[i].ID == id {
			return &a.cars[i]
		}
	}
	return nil
}

func entrySummary(c *models.CarEntry) string {
	name := c.Name
	if name == "" {
		name = fmt.Sprintf("%s %s", c.Make, c.Model)
	}
	return fmt.Sprintf("#%d %s (%d %s %s): %d mods, total $%.2f",
		c.ID, name, c.Year, c.Make, c.Model, c.TotalMods, c.TotalCost)
}
