package service

import (
	"fmt"

	"foodgram/internal/dto"
	"foodgram/internal/errs"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/storage"
	"foodgram/internal/utils"
)

// FollowService 订阅服务
type FollowService struct {
	followRepo *repository.FollowRepository
	userRepo   *repository.UserRepository
	recipeRepo *repository.RecipeRepository
	images     storage.ImageStore
}

// NewFollowService 创建订阅服务
func NewFollowService(
	followRepo *repository.FollowRepository,
	userRepo *repository.UserRepository,
	recipeRepo *repository.RecipeRepository,
	images storage.ImageStore,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
		images:     images,
	}
}

// Subscribe 订阅作者，返回作者及其最新菜谱
func (s *FollowService) Subscribe(userID, authorID uint, recipesLimit int) (*dto.SubscriptionInfo, error) {
	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		return nil, lookupError(err, "用户")
	}
	if userID == authorID {
		return nil, errs.SelfFollow()
	}

	exists, err := s.followRepo.Exists(userID, authorID)
	if err != nil {
		return nil, fmt.Errorf("查询订阅失败: %w", err)
	}
	if exists {
		return nil, errs.AlreadyExists("已订阅该作者")
	}

	if err := s.followRepo.Create(userID, authorID); err != nil {
		if isDuplicate(err) {
			return nil, errs.AlreadyExists("已订阅该作者")
		}
		return nil, fmt.Errorf("订阅失败: %w", err)
	}

	return s.subscriptionInfo(author, recipesLimit)
}

// Unsubscribe 取消订阅
func (s *FollowService) Unsubscribe(userID, authorID uint) error {
	if _, err := s.userRepo.GetByID(authorID); err != nil {
		return lookupError(err, "用户")
	}

	removed, err := s.followRepo.Delete(userID, authorID)
	if err != nil {
		return fmt.Errorf("取消订阅失败: %w", err)
	}
	if !removed {
		return errs.NothingToRemove("未订阅该作者")
	}
	return nil
}

// Subscriptions 分页获取订阅的作者，recipesLimit <= 0 时返回作者全部菜谱
func (s *FollowService) Subscriptions(userID uint, page utils.Page, recipesLimit int) (*dto.PageResult[dto.SubscriptionInfo], error) {
	authors, total, err := s.followRepo.ListAuthors(userID, page.Offset(), page.Limit)
	if err != nil {
		return nil, fmt.Errorf("获取订阅列表失败: %w", err)
	}

	items := make([]dto.SubscriptionInfo, 0, len(authors))
	for i := range authors {
		info, err := s.subscriptionInfo(&authors[i], recipesLimit)
		if err != nil {
			return nil, err
		}
		items = append(items, *info)
	}
	return &dto.PageResult[dto.SubscriptionInfo]{Items: items, Total: total}, nil
}

func (s *FollowService) subscriptionInfo(author *models.User, recipesLimit int) (*dto.SubscriptionInfo, error) {
	recipes, err := s.recipeRepo.ListByAuthor(author.ID, recipesLimit)
	if err != nil {
		return nil, fmt.Errorf("获取作者菜谱失败: %w", err)
	}
	count, err := s.recipeRepo.CountByAuthor(author.ID)
	if err != nil {
		return nil, fmt.Errorf("统计作者菜谱失败: %w", err)
	}

	shorts := make([]dto.RecipeShort, len(recipes))
	for i := range recipes {
		shorts[i] = toRecipeShort(&recipes[i], s.images)
	}

	return &dto.SubscriptionInfo{
		UserInfo:     toUserInfo(author, true),
		Recipes:      shorts,
		RecipesCount: count,
	}, nil
}

func toRecipeShort(r *models.Recipe, images storage.ImageStore) dto.RecipeShort {
	return dto.RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       imageURL(images, r.Image),
		CookingTime: r.CookingTime,
	}
}

func imageURL(images storage.ImageStore, key string) string {
	if key == "" {
		return ""
	}
	return images.URL(key)
}
