package models

// Ingredient 食材，同名食材可以有不同计量单位
type Ingredient struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Name            string `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string `gorm:"size:50;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}

// TableName 指定表名
func (Ingredient) TableName() string {
	return "ingredients"
}
