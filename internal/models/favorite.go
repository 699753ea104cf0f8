package models

type Favorite struct {
	BaseModel

	UserID   uint `gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID uint `gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
