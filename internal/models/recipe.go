package models

import (
	"time"
)

// Recipe 菜谱模型
type Recipe struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Name        string    `gorm:"uniqueIndex;size:200;not null" json:"name"`
	Image       string    `gorm:"size:255" json:"image"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CookingTime int       `gorm:"not null;check:chk_recipe_cooking_time,cooking_time >= 1" json:"cooking_time"`
	CreatedAt   time.Time `gorm:"index" json:"pub_date"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 关联
	Author     User        `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	TagRecipes []TagRecipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Amounts    []Amount    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Recipe) TableName() string {
	return "recipes"
}

// OwnerID 菜谱作者
func (r *Recipe) OwnerID() uint {
	return r.AuthorID
}

// TagRecipe 菜谱与标签的关联
type TagRecipe struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	TagID     uint      `gorm:"not null;uniqueIndex:idx_tag_recipe" json:"tag_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_tag_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	Tag Tag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"tag"`
}

// TableName 指定表名
func (TagRecipe) TableName() string {
	return "tag_recipes"
}

// Amount 菜谱中食材的用量，同一菜谱中同一食材只能出现一次
type Amount struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	RecipeID     uint      `gorm:"not null;uniqueIndex:idx_amount_recipe_ingredient" json:"recipe_id"`
	IngredientID uint      `gorm:"not null;uniqueIndex:idx_amount_recipe_ingredient;index" json:"ingredient_id"`
	Amount       float64   `gorm:"not null;check:chk_amount_positive,amount > 0" json:"amount"`
	CreatedAt    time.Time `json:"created_at"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient"`
}

// TableName 指定表名
func (Amount) TableName() string {
	return "amounts"
}
