package dto

// PageResult 分页查询结果
type PageResult[T any] struct {
	Items []T
	Total int64
}

// RecipeShort 菜谱简要信息，用于订阅列表与收藏/购物车操作的响应
type RecipeShort struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}
