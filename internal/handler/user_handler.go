package handler

import (
	"foodgram/internal/config"
	"foodgram/internal/dto"
	"foodgram/internal/middleware"
	"foodgram/internal/service"
	"foodgram/internal/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户与订阅处理器
type UserHandler struct {
	authService   *service.AuthService
	userService   *service.UserService
	followService *service.FollowService
	pagination    config.PaginationConfig
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	authService *service.AuthService,
	userService *service.UserService,
	followService *service.FollowService,
	pagination config.PaginationConfig,
) *UserHandler {
	return &UserHandler{
		authService:   authService,
		userService:   userService,
		followService: followService,
		pagination:    pagination,
	}
}

func (h *UserHandler) page(c *gin.Context) utils.Page {
	return utils.ParsePage(c, h.pagination.PageSize, h.pagination.MaxPageSize)
}

// Register 用户注册
// @Summary 用户注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 201 {object} utils.Response{data=dto.UserInfo}
// @Router /api/users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Created(c, user)
}

// List 用户列表
// @Summary 用户列表
// @Tags 用户
// @Param search query string false "用户名或邮箱（精确匹配）"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Router /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	page := h.page(c)
	result, err := h.userService.List(actorFrom(c), c.Query("search"), page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, result.Items, result.Total, page.Page, page.Limit)
}

// Me 当前用户
func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	user, err := h.authService.GetMe(userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// SetPassword 修改密码
func (h *UserHandler) SetPassword(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req dto.SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	if err := h.authService.SetPassword(userID, &req); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.NoContent(c)
}

// Get 用户详情
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(actorFrom(c), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// Subscriptions 我订阅的作者
// @Summary 订阅列表
// @Tags 订阅
// @Security BearerAuth
// @Param recipes_limit query int false "每位作者返回的菜谱数量"
// @Router /api/users/subscriptions [get]
func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	page := h.page(c)

	result, err := h.followService.Subscriptions(userID, page, queryInt(c, "recipes_limit", 0))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, result.Items, result.Total, page.Page, page.Limit)
}

// Subscribe 订阅作者
func (h *UserHandler) Subscribe(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	authorID, ok := parseID(c, "id")
	if !ok {
		return
	}

	info, err := h.followService.Subscribe(userID, authorID, queryInt(c, "recipes_limit", 0))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Created(c, info)
}

// Unsubscribe 取消订阅
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	authorID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.followService.Unsubscribe(userID, authorID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.NoContent(c)
}
