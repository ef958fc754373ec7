package handler

import (
	"foodgram/internal/dto"
	"foodgram/internal/middleware"
	"foodgram/internal/service"
	"foodgram/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login 邮箱密码登录
// @Summary 获取Token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} utils.Response{data=dto.LoginResponse}
// @Router /api/auth/token/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "登录成功", resp)
}

// Logout 注销当前Token
// @Summary 注销Token
// @Tags 认证
// @Security BearerAuth
// @Success 204
// @Router /api/auth/token/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		utils.Unauthorized(c, "未认证")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.NoContent(c)
}
