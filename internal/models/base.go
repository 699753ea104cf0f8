package models

import "time"

// BaseModel is gorm.Model without soft deletes. Recipes and relation
// edges are hard-deleted so unique pair indexes stay reusable and
// aggregate joins never have to filter tombstones.
type BaseModel struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
