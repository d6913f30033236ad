// Package catalog loads and validates the read-only restaurant catalog.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/chrisdamba/foodstory/internal/models"
)

// Load reads a catalog from a JSON file and validates it.
func Load(path string) (*models.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	var c models.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", path, err)
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes a catalog as indented JSON.
func Save(path string, c *models.Catalog) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks referential integrity: every hotspot must point at an
// ingredient of its own dish, media types must be known and dish ids must be
// unique across the catalog.
func Validate(c *models.Catalog) error {
	var errs []error
	seen := make(map[string]string)
	for _, r := range c.Restaurants {
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("restaurant %q has no id", r.Name))
		}
		for _, d := range r.Stories {
			if first, ok := seen[d.DishID]; ok {
				errs = append(errs, fmt.Errorf("dish %s in restaurant %s duplicates a dish of restaurant %s", d.DishID, r.ID, first))
			} else {
				seen[d.DishID] = r.ID
			}
			for _, m := range d.Media {
				if m.Type != models.MediaTypeImage && m.Type != models.MediaTypeVideo {
					errs = append(errs, fmt.Errorf("dish %s: media %s has unknown type %q", d.DishID, m.ID, m.Type))
				}
				for _, h := range m.Hotspots {
					if d.Ingredient(h.IngredientID) == nil {
						errs = append(errs, fmt.Errorf("dish %s: hotspot %s references unknown ingredient %s", d.DishID, h.ID, h.IngredientID))
					}
					if h.X < 0 || h.X > 1 || h.Y < 0 || h.Y > 1 {
						errs = append(errs, fmt.Errorf("dish %s: hotspot %s is outside the media area", d.DishID, h.ID))
					}
				}
			}
		}
	}
	return errors.Join(errs...)
}
