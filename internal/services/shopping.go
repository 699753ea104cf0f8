package services

import (
	"github.com/ladle-dev/ladle/internal/models"
	"gorm.io/gorm"
)

// ShoppingItem is one deduplicated line of the aggregated shopping
// list.
type ShoppingItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// ShoppingListAggregator folds every ingredient line of every recipe in
// a user's cart into one summed list. Pure read, safe to run
// concurrently for many users.
type ShoppingListAggregator struct {
	DB *gorm.DB
}

func NewShoppingListAggregator(db *gorm.DB) *ShoppingListAggregator {
	return &ShoppingListAggregator{DB: db}
}

// Aggregate groups cart ingredient lines by (name, measurement unit),
// summing amounts per group. Distinct ingredient rows sharing both keys
// still merge. Groups come back ordered by ingredient name.
func (a *ShoppingListAggregator) Aggregate(userID uint) ([]ShoppingItem, error) {
	var cartSize int64

	if err := a.DB.Model(&models.ShoppingCart{}).Where("user_id = ?", userID).Count(&cartSize).Error; err != nil {
		return nil, err
	}

	if cartSize == 0 {
		return nil, ErrEmptyCart
	}

	var items []ShoppingItem

	err := a.DB.Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}
