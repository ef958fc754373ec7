package repository

import (
	"foodgram/internal/models"

	"gorm.io/gorm"
)

// TagRepository 标签数据访问层
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建标签Repository
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create 创建标签
func (r *TagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// GetByID 根据ID获取标签
func (r *TagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, id).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetByIDs 根据ID列表获取标签
func (r *TagRepository) GetByIDs(ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

// ExistsByNameOrSlug 检查名称或slug是否被其他标签占用
func (r *TagRepository) ExistsByNameOrSlug(name, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Tag{}).Where("name = ? OR slug = ?", name, slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Update 更新标签
func (r *TagRepository) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

// Delete 删除标签
func (r *TagRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.TagRecipe{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
}

// List 获取全部标签，name 不为空时精确匹配
func (r *TagRepository) List(name string) ([]models.Tag, error) {
	var tags []models.Tag
	query := r.db.Model(&models.Tag{})
	if name != "" {
		query = query.Where("name = ?", name)
	}
	err := query.Order("name ASC").Find(&tags).Error
	return tags, err
}
