package dto

// IngredientRequest 创建/更新食材请求
type IngredientRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" binding:"required,max=50"`
}

// IngredientInfo 食材信息
type IngredientInfo struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}
