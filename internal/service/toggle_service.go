package service

import (
	"fmt"

	"foodgram/internal/dto"
	"foodgram/internal/errs"
	"foodgram/internal/repository"
	"foodgram/internal/storage"
)

// ToggleService 收藏/购物车的添加与移除
type ToggleService struct {
	markRepo   *repository.MarkRepository
	recipeRepo *repository.RecipeRepository
	images     storage.ImageStore
}

// NewToggleService 创建标记服务
func NewToggleService(markRepo *repository.MarkRepository, recipeRepo *repository.RecipeRepository, images storage.ImageStore) *ToggleService {
	return &ToggleService{markRepo: markRepo, recipeRepo: recipeRepo, images: images}
}

func (s *ToggleService) label() string {
	if s.markRepo.Kind() == repository.MarkFavorite {
		return "收藏"
	}
	return "购物车"
}

// Add 将菜谱加入收藏/购物车
func (s *ToggleService) Add(userID, recipeID uint) (*dto.RecipeShort, error) {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, lookupError(err, "菜谱")
	}

	exists, err := s.markRepo.Exists(userID, recipeID)
	if err != nil {
		return nil, fmt.Errorf("查询%s失败: %w", s.label(), err)
	}
	if exists {
		return nil, errs.AlreadyExists("菜谱已在" + s.label() + "中")
	}

	if err := s.markRepo.Add(userID, recipeID); err != nil {
		if isDuplicate(err) {
			return nil, errs.AlreadyExists("菜谱已在" + s.label() + "中")
		}
		return nil, fmt.Errorf("添加到%s失败: %w", s.label(), err)
	}

	short := toRecipeShort(recipe, s.images)
	return &short, nil
}

// Remove 将菜谱移出收藏/购物车
func (s *ToggleService) Remove(userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(recipeID); err != nil {
		return lookupError(err, "菜谱")
	}

	removed, err := s.markRepo.Remove(userID, recipeID)
	if err != nil {
		return fmt.Errorf("从%s移除失败: %w", s.label(), err)
	}
	if !removed {
		return errs.NothingToRemove("菜谱不在" + s.label() + "中")
	}
	return nil
}
