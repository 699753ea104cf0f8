package models

type Tag struct {
	BaseModel

	Name  string `gorm:"uniqueIndex;not null"`
	Color string `gorm:"uniqueIndex;not null"` // hex color from the fixed palette in types.TagPalette
	Slug  string `gorm:"uniqueIndex;not null"`
}
