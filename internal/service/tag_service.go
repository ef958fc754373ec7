package service

import (
	"fmt"

	"foodgram/internal/dto"
	"foodgram/internal/errs"
	"foodgram/internal/models"
	"foodgram/internal/repository"
)

// TagService 标签服务
type TagService struct {
	tagRepo *repository.TagRepository
}

// NewTagService 创建标签服务
func NewTagService(tagRepo *repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// List 获取标签，name 精确匹配
func (s *TagService) List(name string) ([]dto.TagInfo, error) {
	tags, err := s.tagRepo.List(name)
	if err != nil {
		return nil, fmt.Errorf("获取标签列表失败: %w", err)
	}

	infos := make([]dto.TagInfo, len(tags))
	for i := range tags {
		infos[i] = toTagInfo(&tags[i])
	}
	return infos, nil
}

// Get 获取标签
func (s *TagService) Get(id uint) (*dto.TagInfo, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "标签")
	}
	info := toTagInfo(tag)
	return &info, nil
}

// Create 创建标签
func (s *TagService) Create(req *dto.TagRequest) (*dto.TagInfo, error) {
	if err := s.checkUnique(req, 0); err != nil {
		return nil, err
	}

	tag := &models.Tag{Name: req.Name, Color: req.Color, Slug: req.Slug}
	if err := s.tagRepo.Create(tag); err != nil {
		if isDuplicate(err) {
			return nil, errs.Validation("slug", "标签名称或slug已存在")
		}
		return nil, fmt.Errorf("创建标签失败: %w", err)
	}
	info := toTagInfo(tag)
	return &info, nil
}

// Update 更新标签
func (s *TagService) Update(id uint, req *dto.TagRequest) (*dto.TagInfo, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "标签")
	}

	if err := s.checkUnique(req, id); err != nil {
		return nil, err
	}

	tag.Name = req.Name
	tag.Color = req.Color
	tag.Slug = req.Slug
	if err := s.tagRepo.Update(tag); err != nil {
		if isDuplicate(err) {
			return nil, errs.Validation("slug", "标签名称或slug已存在")
		}
		return nil, fmt.Errorf("更新标签失败: %w", err)
	}
	info := toTagInfo(tag)
	return &info, nil
}

// Delete 删除标签，同时移除菜谱上的该标签
func (s *TagService) Delete(id uint) error {
	if _, err := s.tagRepo.GetByID(id); err != nil {
		return lookupError(err, "标签")
	}
	if err := s.tagRepo.Delete(id); err != nil {
		return fmt.Errorf("删除标签失败: %w", err)
	}
	return nil
}

func (s *TagService) checkUnique(req *dto.TagRequest, excludeID uint) error {
	exists, err := s.tagRepo.ExistsByNameOrSlug(req.Name, req.Slug, excludeID)
	if err != nil {
		return fmt.Errorf("检查标签失败: %w", err)
	}
	if exists {
		return errs.Validation("slug", "标签名称或slug已存在")
	}
	return nil
}

func toTagInfo(t *models.Tag) dto.TagInfo {
	return dto.TagInfo{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}
