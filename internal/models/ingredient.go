package models

type Ingredient struct {
	BaseModel

	Name            string `gorm:"not null;index:idx_ingredient_name_unit"`
	MeasurementUnit string `gorm:"not null;index:idx_ingredient_name_unit"`
}
