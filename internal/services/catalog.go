package services

import (
	"errors"

	"github.com/ladle-dev/ladle/internal/models"
	"gorm.io/gorm"
)

// TagCatalog and IngredientCatalog expose the read-only reference data
// that recipe composition resolves ids against.

type TagCatalog struct {
	DB *gorm.DB
}

func NewTagCatalog(db *gorm.DB) *TagCatalog {
	return &TagCatalog{DB: db}
}

func (c *TagCatalog) Resolve(id uint) (*models.Tag, error) {
	var tag models.Tag

	if err := c.DB.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &tag, nil
}

func (c *TagCatalog) ListAll() ([]models.Tag, error) {
	var tags []models.Tag

	if err := c.DB.Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}

	return tags, nil
}

type IngredientCatalog struct {
	DB *gorm.DB
}

func NewIngredientCatalog(db *gorm.DB) *IngredientCatalog {
	return &IngredientCatalog{DB: db}
}

func (c *IngredientCatalog) Resolve(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient

	if err := c.DB.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &ingredient, nil
}

// List returns ingredients, optionally narrowed to a case-insensitive
// name prefix.
func (c *IngredientCatalog) List(namePrefix string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient

	query := c.DB.Order("name")

	if namePrefix != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", namePrefix+"%")
	}

	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}

	return ingredients, nil
}
