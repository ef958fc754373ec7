package dto

import (
	"net/url"
	"strings"
	"time"
)

// AmountInput 菜谱中一种食材的用量
type AmountInput struct {
	ID     uint    `json:"id" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// RecipeRequest 创建/更新菜谱请求，更新时 image 可省略
type RecipeRequest struct {
	Ingredients []AmountInput `json:"ingredients" binding:"required,min=1,dive"`
	Tags        []uint        `json:"tags" binding:"required,min=1"`
	Image       string        `json:"image"`
	Name        string        `json:"name" binding:"required,max=200"`
	Text        string        `json:"text" binding:"required"`
	CookingTime int           `json:"cooking_time" binding:"required,gte=1"`
}

// RecipeIngredientInfo 菜谱中的食材及用量
type RecipeIngredientInfo struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	MeasurementUnit string  `json:"measurement_unit"`
	Amount          float64 `json:"amount"`
}

// RecipeInfo 菜谱详情
type RecipeInfo struct {
	ID               uint                   `json:"id"`
	Tags             []TagInfo              `json:"tags"`
	Author           UserInfo               `json:"author"`
	Ingredients      []RecipeIngredientInfo `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
	PubDate          time.Time              `json:"pub_date"`
}

// RecipeFilterQuery 菜谱列表的查询条件
type RecipeFilterQuery struct {
	IsFavorited      *bool
	IsInShoppingCart *bool
	// Author 作者ID或用户名
	Author string
	Tags   []string
}

// ParseRecipeFilter 解析菜谱列表查询参数
func ParseRecipeFilter(values url.Values) RecipeFilterQuery {
	query := RecipeFilterQuery{
		IsFavorited:      parseFlag(values, "is_favorited"),
		IsInShoppingCart: parseFlag(values, "is_in_shopping_cart"),
		Author:           strings.TrimSpace(values.Get("author")),
	}

	for _, slug := range values["tags"] {
		slug = strings.TrimSpace(slug)
		if slug != "" {
			query.Tags = append(query.Tags, slug)
		}
	}
	return query
}

// parseFlag 参数缺省返回nil，"0"和"false"为false，其余为true
func parseFlag(values url.Values, key string) *bool {
	if _, ok := values[key]; !ok {
		return nil
	}
	raw := strings.ToLower(strings.TrimSpace(values.Get(key)))
	flag := raw != "0" && raw != "false"
	return &flag
}
