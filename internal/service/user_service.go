package service

import (
	"fmt"

	"foodgram/internal/dto"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/utils"
)

// UserService 用户查询服务
type UserService struct {
	userRepo   *repository.UserRepository
	followRepo *repository.FollowRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo *repository.UserRepository, followRepo *repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo}
}

// List 分页获取用户，search 精确匹配用户名或邮箱
func (s *UserService) List(viewer *Actor, search string, page utils.Page) (*dto.PageResult[dto.UserInfo], error) {
	users, total, err := s.userRepo.List(search, page.Offset(), page.Limit)
	if err != nil {
		return nil, fmt.Errorf("获取用户列表失败: %w", err)
	}

	infos, err := s.toUserInfos(viewer, users)
	if err != nil {
		return nil, err
	}
	return &dto.PageResult[dto.UserInfo]{Items: infos, Total: total}, nil
}

// Get 获取用户详情
func (s *UserService) Get(viewer *Actor, userID uint) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, lookupError(err, "用户")
	}

	infos, err := s.toUserInfos(viewer, []models.User{*user})
	if err != nil {
		return nil, err
	}
	return &infos[0], nil
}

func (s *UserService) toUserInfos(viewer *Actor, users []models.User) ([]dto.UserInfo, error) {
	ids := make([]uint, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}

	followed, err := s.followRepo.FollowedAuthorIDs(viewer.ViewerID(), ids)
	if err != nil {
		return nil, fmt.Errorf("查询订阅状态失败: %w", err)
	}

	infos := make([]dto.UserInfo, len(users))
	for i := range users {
		infos[i] = toUserInfo(&users[i], followed[users[i].ID])
	}
	return infos, nil
}
