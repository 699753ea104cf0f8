package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ladle-dev/ladle/internal/models"
	"github.com/ladle-dev/ladle/internal/types"
	"gorm.io/gorm"
)

var defaultTags = []models.Tag{
	{Name: "breakfast", Color: "#48e22d", Slug: "breakfast"},
	{Name: "dinner", Color: "#2da3e2", Slug: "dinner"},
	{Name: "supper", Color: "#c72de2", Slug: "supper"},
}

// Tags inserts the fixed tag set. Idempotent: existing slugs are left
// untouched.
func Tags(db *gorm.DB) error {
	for _, tag := range defaultTags {
		if !types.IsPaletteColor(tag.Color) {
			return fmt.Errorf("tag %q color %q is not in the palette", tag.Name, tag.Color)
		}

		if err := db.Where(models.Tag{Slug: tag.Slug}).FirstOrCreate(&tag).Error; err != nil {
			return err
		}
	}

	return nil
}

type ingredientFixture struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// Ingredients loads ingredient reference data from a JSON fixture file
// of [{"name": ..., "measurement_unit": ...}] entries. Idempotent on
// the (name, unit) pair.
func Ingredients(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)

	if err != nil {
		return err
	}

	var fixtures []ingredientFixture

	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return fmt.Errorf("parse ingredient fixtures: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, f := range fixtures {
			if f.Name == "" || f.MeasurementUnit == "" {
				return fmt.Errorf("ingredient fixture missing name or measurement_unit: %+v", f)
			}

			ingredient := models.Ingredient{Name: f.Name, MeasurementUnit: f.MeasurementUnit}

			if err := tx.Where(ingredient).FirstOrCreate(&ingredient).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
