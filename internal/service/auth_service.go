package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodgram/internal/config"
	"foodgram/internal/dto"
	"foodgram/internal/errs"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthService 认证服务
type AuthService struct {
	userRepo   *repository.UserRepository
	tokenRepo  *repository.TokenRepository
	jwtManager *utils.JWTManager
	cfg        *config.Config
	logger     *logrus.Logger
}

// NewAuthService 创建认证服务
func NewAuthService(
	userRepo *repository.UserRepository,
	tokenRepo *repository.TokenRepository,
	jwtManager *utils.JWTManager,
	cfg *config.Config,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtManager: jwtManager,
		cfg:        cfg,
		logger:     logger,
	}
}

// Register 用户注册
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.UserInfo, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("检查邮箱失败: %w", err)
	}
	if exists {
		return nil, errs.Validation("email", "该邮箱已被注册")
	}

	exists, err = s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, fmt.Errorf("检查用户名失败: %w", err)
	}
	if exists {
		return nil, errs.Validation("username", "用户名已存在")
	}

	hashedPassword, err := hashPassword("password", req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hashedPassword,
		Role:         models.RoleUser,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		if isDuplicate(err) {
			return nil, errs.Validation("username", "用户名或邮箱已存在")
		}
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	info := toUserInfo(user, false)
	return &info, nil
}

// Login 邮箱密码登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Validation("email", "邮箱或密码错误")
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	if err := utils.CheckPassword(req.Password, user.PasswordHash); err != nil {
		return nil, errs.Validation("email", "邮箱或密码错误")
	}

	if !user.IsActive {
		return nil, errs.Validation("email", "用户已被禁用")
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Username, user.IsAdmin())
	if err != nil {
		return nil, fmt.Errorf("生成Token失败: %w", err)
	}

	return &dto.LoginResponse{AuthToken: token}, nil
}

// Logout 注销当前Token，未启用Redis时Token会在过期前一直有效
func (s *AuthService) Logout(ctx context.Context, claims *utils.JWTClaims) error {
	if !s.tokenRepo.Enabled() {
		s.logger.WithField("user_id", claims.UserID).Debug("未启用令牌黑名单，跳过注销")
		return nil
	}
	if err := s.tokenRepo.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return fmt.Errorf("注销失败: %w", err)
	}
	return nil
}

// SetPassword 修改密码
func (s *AuthService) SetPassword(userID uint, req *dto.SetPasswordRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return lookupError(err, "用户")
	}

	if err := utils.CheckPassword(req.CurrentPassword, user.PasswordHash); err != nil {
		return errs.Validation("current_password", "当前密码错误")
	}

	hashedPassword, err := hashPassword("new_password", req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(userID, hashedPassword); err != nil {
		return fmt.Errorf("更新密码失败: %w", err)
	}
	return nil
}

// GetMe 获取当前用户信息
func (s *AuthService) GetMe(userID uint) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, lookupError(err, "用户")
	}

	info := toUserInfo(user, false)
	return &info, nil
}

// InitAdmin 初始化管理员账户，已存在管理员时不做任何事
func (s *AuthService) InitAdmin() error {
	admin, err := s.userRepo.GetAdmin()
	if err == nil && admin != nil {
		return nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("查询管理员失败: %w", err)
	}

	if s.cfg.Admin.Password == "" {
		return errors.New("未配置管理员密码")
	}

	// 配置中的密码可能已经是bcrypt哈希
	passwordHash := s.cfg.Admin.Password
	if !utils.IsPasswordHash(passwordHash) {
		hashedPassword, err := utils.HashPassword(s.cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("密码哈希失败: %w", err)
		}
		passwordHash = hashedPassword
	}

	user := &models.User{
		Email:        strings.ToLower(s.cfg.Admin.Email),
		Username:     s.cfg.Admin.Username,
		FirstName:    "Admin",
		LastName:     "Admin",
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("创建管理员失败: %w", err)
	}

	s.logger.WithField("username", user.Username).Info("已创建管理员账户")
	return nil
}

// hashPassword 超长密码按字段校验错误返回
func hashPassword(field, password string) (string, error) {
	hashed, err := utils.HashPassword(password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return "", errs.Validation(field, err.Error())
	}
	if err != nil {
		return "", fmt.Errorf("密码哈希失败: %w", err)
	}
	return hashed, nil
}

func toUserInfo(u *models.User, subscribed bool) dto.UserInfo {
	return dto.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}
