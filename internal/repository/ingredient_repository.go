package repository

import (
	"foodgram/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientRepository 食材数据访问层
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository 创建食材Repository
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// Create 创建食材
func (r *IngredientRepository) Create(ingredient *models.Ingredient) error {
	return r.db.Create(ingredient).Error
}

// CreateBatchIgnoreExisting 批量导入食材，已存在的 (name, measurement_unit) 跳过，返回新增条数
func (r *IngredientRepository) CreateBatchIgnoreExisting(ingredients []models.Ingredient, batchSize int) (int64, error) {
	if len(ingredients) == 0 {
		return 0, nil
	}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&ingredients, batchSize)
	return result.RowsAffected, result.Error
}

// GetByID 根据ID获取食材
func (r *IngredientRepository) GetByID(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.First(&ingredient, id).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// GetByIDs 根据ID列表获取食材
func (r *IngredientRepository) GetByIDs(ids []uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}

// Exists 检查 (名称, 单位) 是否被其他食材占用
func (r *IngredientRepository) Exists(name, unit string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Ingredient{}).Where("name = ? AND measurement_unit = ?", name, unit)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Update 更新食材
func (r *IngredientRepository) Update(ingredient *models.Ingredient) error {
	return r.db.Save(ingredient).Error
}

// Delete 删除食材
func (r *IngredientRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", id).Delete(&models.Amount{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Ingredient{}, id).Error
	})
}

// List 获取食材列表，name 不为空时按前缀匹配
func (r *IngredientRepository) List(name string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	query := r.db.Model(&models.Ingredient{})
	if name != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\'", escapeLike(name)+"%")
	}
	err := query.Order("name ASC").Find(&ingredients).Error
	return ingredients, err
}
