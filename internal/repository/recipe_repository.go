package repository

import (
	"foodgram/internal/models"

	"gorm.io/gorm"
)

// RecipeFilter 菜谱列表过滤条件，各条件之间为AND关系
type RecipeFilter struct {
	// ViewerID 当前用户，0 表示匿名
	ViewerID         uint
	IsFavorited      *bool
	IsInShoppingCart *bool
	AuthorID         *uint
	// TagSlugs 命中任意一个即可
	TagSlugs []string
}

// AmountKey 用量比较键，只改数量视为删除旧记录并新增
type AmountKey struct {
	IngredientID uint
	Amount       float64
}

// IngredientTotal 购物清单中一种食材的汇总
type IngredientTotal struct {
	Name            string  `gorm:"column:name"`
	MeasurementUnit string  `gorm:"column:measurement_unit"`
	Total           float64 `gorm:"column:total"`
}

// RecipeRepository 菜谱数据访问层
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository 创建菜谱Repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// WithTx 返回绑定到事务的Repository
func (r *RecipeRepository) WithTx(tx *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: tx}
}

// Transaction 在一个事务中执行fn
func (r *RecipeRepository) Transaction(fn func(repo *RecipeRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// Create 创建菜谱
func (r *RecipeRepository) Create(recipe *models.Recipe) error {
	return r.db.Omit("Author", "TagRecipes", "Amounts").Create(recipe).Error
}

// GetByID 根据ID获取菜谱（不含关联）
func (r *RecipeRepository) GetByID(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetDetail 根据ID获取菜谱及作者、标签、食材
func (r *RecipeRepository) GetDetail(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.withRelations(r.db).First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ExistsByName 检查菜谱名是否被其他菜谱占用
func (r *RecipeRepository) ExistsByName(name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Recipe{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// UpdateFields 更新菜谱基本字段
func (r *RecipeRepository) UpdateFields(recipe *models.Recipe) error {
	return r.db.Model(recipe).Select("name", "text", "cooking_time", "image", "updated_at").Updates(recipe).Error
}

// Delete 删除菜谱及其全部关联记录
func (r *RecipeRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.TagRecipe{},
			&models.Amount{},
			&models.Favorite{},
			&models.ShoppingCart{},
		} {
			if err := tx.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
}

// CountTags 统计ids中实际存在的标签数
func (r *RecipeRepository) CountTags(ids []uint) (int64, error) {
	return r.countByIDs(&models.Tag{}, ids)
}

// CountIngredients 统计ids中实际存在的食材数
func (r *RecipeRepository) CountIngredients(ids []uint) (int64, error) {
	return r.countByIDs(&models.Ingredient{}, ids)
}

func (r *RecipeRepository) countByIDs(model interface{}, ids []uint) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := r.db.Model(model).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// TagIDs 菜谱当前的标签ID
func (r *RecipeRepository) TagIDs(recipeID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.TagRecipe{}).Where("recipe_id = ?", recipeID).Order("id ASC").Pluck("tag_id", &ids).Error
	return ids, err
}

// AddTags 批量新增标签关联
func (r *RecipeRepository) AddTags(recipeID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]models.TagRecipe, len(tagIDs))
	for i, tagID := range tagIDs {
		links[i] = models.TagRecipe{RecipeID: recipeID, TagID: tagID}
	}
	return r.db.Omit("Tag").Create(&links).Error
}

// RemoveTags 删除指定标签关联
func (r *RecipeRepository) RemoveTags(recipeID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	return r.db.Where("recipe_id = ? AND tag_id IN ?", recipeID, tagIDs).Delete(&models.TagRecipe{}).Error
}

// AmountKeys 菜谱当前的用量
func (r *RecipeRepository) AmountKeys(recipeID uint) ([]AmountKey, error) {
	var amounts []models.Amount
	if err := r.db.Where("recipe_id = ?", recipeID).Order("id ASC").Find(&amounts).Error; err != nil {
		return nil, err
	}
	keys := make([]AmountKey, len(amounts))
	for i, a := range amounts {
		keys[i] = AmountKey{IngredientID: a.IngredientID, Amount: a.Amount}
	}
	return keys, nil
}

// AddAmounts 批量新增用量
func (r *RecipeRepository) AddAmounts(recipeID uint, keys []AmountKey) error {
	if len(keys) == 0 {
		return nil
	}
	amounts := make([]models.Amount, len(keys))
	for i, k := range keys {
		amounts[i] = models.Amount{RecipeID: recipeID, IngredientID: k.IngredientID, Amount: k.Amount}
	}
	return r.db.Omit("Ingredient").Create(&amounts).Error
}

// RemoveAmounts 删除指定用量
func (r *RecipeRepository) RemoveAmounts(recipeID uint, keys []AmountKey) error {
	for _, k := range keys {
		err := r.db.Where("recipe_id = ? AND ingredient_id = ? AND amount = ?", recipeID, k.IngredientID, k.Amount).
			Delete(&models.Amount{}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// List 按过滤条件分页获取菜谱，按发布时间倒序
func (r *RecipeRepository) List(filter RecipeFilter, offset, limit int) ([]models.Recipe, int64, error) {
	var recipes []models.Recipe
	var total int64

	query := r.applyFilter(r.db.Model(&models.Recipe{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.withRelations(query).
		Order("recipes.created_at DESC").
		Order("recipes.id DESC").
		Offset(offset).Limit(limit).
		Find(&recipes).Error
	return recipes, total, err
}

// ListByAuthor 获取作者最新的菜谱，limit <= 0 表示不限制
func (r *RecipeRepository) ListByAuthor(authorID uint, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	query := r.db.Where("author_id = ?", authorID).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&recipes).Error
	return recipes, err
}

// CountByAuthor 作者的菜谱数量
func (r *RecipeRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// AggregateShoppingCart 汇总用户购物车中所有菜谱的食材用量，按食材名升序
func (r *RecipeRepository) AggregateShoppingCart(userID uint) ([]IngredientTotal, error) {
	var totals []IngredientTotal
	err := r.db.Table("amounts").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(amounts.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = amounts.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = amounts.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Order("ingredients.measurement_unit ASC").
		Scan(&totals).Error
	return totals, err
}

func (r *RecipeRepository) withRelations(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Author").
		Preload("TagRecipes", func(db *gorm.DB) *gorm.DB { return db.Order("tag_recipes.id ASC") }).
		Preload("TagRecipes.Tag").
		Preload("Amounts", func(db *gorm.DB) *gorm.DB { return db.Order("amounts.id ASC") }).
		Preload("Amounts.Ingredient")
}

// applyFilter 以子查询表达过滤条件，多个标签命中同一菜谱不会产生重复行
func (r *RecipeRepository) applyFilter(query *gorm.DB, f RecipeFilter) *gorm.DB {
	query = r.applyMark(query, &models.Favorite{}, f.ViewerID, f.IsFavorited)
	query = r.applyMark(query, &models.ShoppingCart{}, f.ViewerID, f.IsInShoppingCart)

	if f.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *f.AuthorID)
	}

	if len(f.TagSlugs) > 0 {
		sub := r.db.Model(&models.TagRecipe{}).
			Select("tag_recipes.recipe_id").
			Joins("JOIN tags ON tags.id = tag_recipes.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
		query = query.Where("recipes.id IN (?)", sub)
	}

	return query
}

func (r *RecipeRepository) applyMark(query *gorm.DB, model interface{}, viewerID uint, want *bool) *gorm.DB {
	if want == nil {
		return query
	}
	if viewerID == 0 {
		// 匿名用户没有收藏/购物车
		if *want {
			return query.Where("1 = 0")
		}
		return query
	}

	sub := r.db.Model(model).Select("recipe_id").Where("user_id = ?", viewerID)
	if *want {
		return query.Where("recipes.id IN (?)", sub)
	}
	return query.Where("recipes.id NOT IN (?)", sub)
}
