package models

type Recipe struct {
	BaseModel

	AuthorID    uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Image       string `gorm:"not null"` // reference returned by the image store
	Text        string `gorm:"not null"`
	CookingTime int    `gorm:"not null"` // minutes, >= 1

	// Relationships
	Author      User               `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Favorites   []Favorite         `gorm:"foreignKey:RecipeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CartEntries []ShoppingCart     `gorm:"foreignKey:RecipeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
