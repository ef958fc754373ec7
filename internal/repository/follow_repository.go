package repository

import (
	"foodgram/internal/models"

	"gorm.io/gorm"
)

// FollowRepository 订阅数据访问层
type FollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository 创建订阅Repository
func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Exists 是否已订阅
func (r *FollowRepository) Exists(userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("user_id = ? AND author_id = ?", userID, authorID).Count(&count).Error
	return count > 0, err
}

// Create 订阅作者
func (r *FollowRepository) Create(userID, authorID uint) error {
	return r.db.Omit("User", "Author").Create(&models.Follow{UserID: userID, AuthorID: authorID}).Error
}

// Delete 取消订阅，返回是否删除了记录
func (r *FollowRepository) Delete(userID, authorID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{})
	return result.RowsAffected > 0, result.Error
}

// FollowedAuthorIDs 返回 authorIDs 中被用户订阅的部分
func (r *FollowRepository) FollowedAuthorIDs(userID uint, authorIDs []uint) (map[uint]bool, error) {
	followed := make(map[uint]bool)
	if userID == 0 || len(authorIDs) == 0 {
		return followed, nil
	}

	var ids []uint
	err := r.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		followed[id] = true
	}
	return followed, nil
}

// ListAuthors 分页获取用户订阅的作者，按订阅时间倒序
func (r *FollowRepository) ListAuthors(userID uint, offset, limit int) ([]models.User, int64, error) {
	var authors []models.User
	var total int64

	query := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("follows.id DESC").Offset(offset).Limit(limit).Find(&authors).Error
	return authors, total, err
}
