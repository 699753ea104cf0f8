package models

// RecipeIngredient is the recipe x ingredient join carrying the amount.
// One ingredient may appear in a recipe at most once.
type RecipeIngredient struct {
	BaseModel

	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Amount       int  `gorm:"not null"` // >= 1

	// Relationships
	Recipe     Recipe     `gorm:"foreignKey:RecipeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
