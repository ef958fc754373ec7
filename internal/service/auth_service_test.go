package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"foodgram/internal/dto"
	"foodgram/internal/errs"
	"foodgram/internal/repository"
	"foodgram/internal/utils"

	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	serviceSuite

	svc *AuthService
	jwt *utils.JWTManager
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.serviceSuite.SetupTest()
	s.jwt = utils.NewJWTManager(s.cfg.JWT.SecretKey, s.cfg.JWT.Algorithm, s.cfg.JWT.GetExpireDuration())
	s.svc = NewAuthService(s.users, repository.NewTokenRepository(nil), s.jwt, s.cfg, s.logger)
}

func (s *AuthServiceSuite) register() *dto.UserInfo {
	info, err := s.svc.Register(&dto.RegisterRequest{
		Email:     "Chef@Example.com",
		Username:  "chef",
		FirstName: "Gordon",
		LastName:  "Ramsay",
		Password:  "kitchen-secret",
	})
	s.Require().NoError(err)
	return info
}

func (s *AuthServiceSuite) TestRegisterAndLogin() {
	info := s.register()
	s.Equal("chef@example.com", info.Email)

	resp, err := s.svc.Login(&dto.LoginRequest{Email: "chef@example.com", Password: "kitchen-secret"})
	s.Require().NoError(err)

	claims, err := s.jwt.ValidateToken(resp.AuthToken)
	s.Require().NoError(err)
	s.Equal(info.ID, claims.UserID)
	s.False(claims.IsAdmin)
	s.NotEmpty(claims.ID)

	_, err = s.svc.Login(&dto.LoginRequest{Email: "chef@example.com", Password: "wrong"})
	s.True(errs.IsValidation(err))

	_, err = s.svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "kitchen-secret"})
	s.True(errs.IsValidation(err))
}

func (s *AuthServiceSuite) TestRegisterDuplicates() {
	s.register()

	_, err := s.svc.Register(&dto.RegisterRequest{
		Email: "chef@example.com", Username: "other", FirstName: "a", LastName: "b", Password: "kitchen-secret",
	})
	s.True(errs.IsValidation(err))

	_, err = s.svc.Register(&dto.RegisterRequest{
		Email: "other@example.com", Username: "chef", FirstName: "a", LastName: "b", Password: "kitchen-secret",
	})
	s.True(errs.IsValidation(err))
}

func (s *AuthServiceSuite) TestSetPassword() {
	info := s.register()

	err := s.svc.SetPassword(info.ID, &dto.SetPasswordRequest{CurrentPassword: "bad", NewPassword: "new-password"})
	s.True(errs.IsValidation(err))

	s.Require().NoError(s.svc.SetPassword(info.ID, &dto.SetPasswordRequest{
		CurrentPassword: "kitchen-secret",
		NewPassword:     "new-password",
	}))

	_, err = s.svc.Login(&dto.LoginRequest{Email: "chef@example.com", Password: "new-password"})
	s.NoError(err)
}

func (s *AuthServiceSuite) TestOverlongPasswordIsValidationError() {
	_, err := s.svc.Register(&dto.RegisterRequest{
		Email:     "long@example.com",
		Username:  "long",
		FirstName: "Long",
		LastName:  "Password",
		Password:  strings.Repeat("p", 100),
	})
	s.True(errs.IsValidation(err))
	s.Equal(http.StatusBadRequest, errs.StatusCode(err))

	info := s.register()
	err = s.svc.SetPassword(info.ID, &dto.SetPasswordRequest{
		CurrentPassword: "kitchen-secret",
		NewPassword:     strings.Repeat("p", 100),
	})
	s.True(errs.IsValidation(err))
	s.Equal(http.StatusBadRequest, errs.StatusCode(err))
}

func (s *AuthServiceSuite) TestLogoutWithoutRedis() {
	info := s.register()
	token, err := s.jwt.GenerateToken(info.ID, info.Username, false)
	s.Require().NoError(err)
	claims, err := s.jwt.ValidateToken(token)
	s.Require().NoError(err)

	s.NoError(s.svc.Logout(context.Background(), claims))
}

func (s *AuthServiceSuite) TestInitAdminIsIdempotent() {
	s.Require().NoError(s.svc.InitAdmin())
	s.Require().NoError(s.svc.InitAdmin())

	admin, err := s.users.GetAdmin()
	s.Require().NoError(err)
	s.Equal("admin", admin.Username)
	s.True(admin.IsAdmin())
	s.NoError(utils.CheckPassword("admin-pass", admin.PasswordHash))

	_, total, err := s.users.List("", 0, 10)
	s.Require().NoError(err)
	s.EqualValues(1, total)
}
