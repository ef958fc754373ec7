package repository

import (
	"foodgram/internal/models"

	"gorm.io/gorm"
)

// MarkKind 用户对菜谱的标记类型
type MarkKind string

const (
	MarkFavorite     MarkKind = "favorite"
	MarkShoppingCart MarkKind = "shopping_cart"
)

// MarkRepository 收藏与购物车的数据访问层，两者结构相同只是表不同
type MarkRepository struct {
	db   *gorm.DB
	kind MarkKind
}

// NewFavoriteRepository 创建收藏Repository
func NewFavoriteRepository(db *gorm.DB) *MarkRepository {
	return &MarkRepository{db: db, kind: MarkFavorite}
}

// NewShoppingCartRepository 创建购物车Repository
func NewShoppingCartRepository(db *gorm.DB) *MarkRepository {
	return &MarkRepository{db: db, kind: MarkShoppingCart}
}

// Kind 标记类型
func (r *MarkRepository) Kind() MarkKind {
	return r.kind
}

func (r *MarkRepository) model() interface{} {
	if r.kind == MarkFavorite {
		return &models.Favorite{}
	}
	return &models.ShoppingCart{}
}

// Exists 用户是否已标记菜谱
func (r *MarkRepository) Exists(userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.Model(r.model()).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error
	return count > 0, err
}

// Add 新增标记，重复标记由唯一索引拒绝（gorm.ErrDuplicatedKey）
func (r *MarkRepository) Add(userID, recipeID uint) error {
	if r.kind == MarkFavorite {
		return r.db.Omit("User", "Recipe").Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
	}
	return r.db.Omit("User", "Recipe").Create(&models.ShoppingCart{UserID: userID, RecipeID: recipeID}).Error
}

// Remove 删除标记，返回是否删除了记录
func (r *MarkRepository) Remove(userID, recipeID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(r.model())
	return result.RowsAffected > 0, result.Error
}

// MarkedRecipeIDs 返回 recipeIDs 中被用户标记的部分
func (r *MarkRepository) MarkedRecipeIDs(userID uint, recipeIDs []uint) (map[uint]bool, error) {
	marked := make(map[uint]bool)
	if userID == 0 || len(recipeIDs) == 0 {
		return marked, nil
	}

	var ids []uint
	err := r.db.Model(r.model()).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		marked[id] = true
	}
	return marked, nil
}
