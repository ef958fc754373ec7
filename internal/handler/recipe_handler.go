package handler

import (
	"foodgram/internal/config"
	"foodgram/internal/dto"
	"foodgram/internal/middleware"
	"foodgram/internal/service"
	"foodgram/internal/utils"

	"github.com/gin-gonic/gin"
)

// ShoppingListFilename 购物清单下载文件名
const ShoppingListFilename = "shopping_cart.txt"

// RecipeHandler 菜谱处理器
type RecipeHandler struct {
	recipeService   *service.RecipeService
	favorites       *service.ToggleService
	shoppingCart    *service.ToggleService
	shoppingService *service.ShoppingService
	pagination      config.PaginationConfig
}

// NewRecipeHandler 创建菜谱处理器
func NewRecipeHandler(
	recipeService *service.RecipeService,
	favorites *service.ToggleService,
	shoppingCart *service.ToggleService,
	shoppingService *service.ShoppingService,
	pagination config.PaginationConfig,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		favorites:       favorites,
		shoppingCart:    shoppingCart,
		shoppingService: shoppingService,
		pagination:      pagination,
	}
}

// List 菜谱列表
// @Summary 菜谱列表
// @Tags 菜谱
// @Param is_favorited query string false "只看收藏"
// @Param is_in_shopping_cart query string false "只看购物车"
// @Param author query string false "作者ID或用户名"
// @Param tags query []string false "标签slug，可重复"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Router /api/recipes [get]
func (h *RecipeHandler) List(c *gin.Context) {
	page := utils.ParsePage(c, h.pagination.PageSize, h.pagination.MaxPageSize)
	query := dto.ParseRecipeFilter(c.Request.URL.Query())

	result, err := h.recipeService.List(actorFrom(c), query, page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, result.Items, result.Total, page.Page, page.Limit)
}

// Get 菜谱详情
func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(actorFrom(c), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, recipe)
}

// Create 发布菜谱
// @Summary 发布菜谱
// @Tags 菜谱
// @Security BearerAuth
// @Accept json
// @Param request body dto.RecipeRequest true "菜谱，image 为 base64 data URI"
// @Success 201 {object} utils.Response{data=dto.RecipeInfo}
// @Router /api/recipes [post]
func (h *RecipeHandler) Create(c *gin.Context) {
	var req dto.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Created(c, recipe)
}

// Update 修改菜谱，PATCH 与 PUT 均为整体替换
func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), actorFrom(c), id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, recipe)
}

// Delete 删除菜谱
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.NoContent(c)
}

// AddFavorite 加入收藏
func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addMark(c, h.favorites)
}

// RemoveFavorite 取消收藏
func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeMark(c, h.favorites)
}

// AddToShoppingCart 加入购物车
func (h *RecipeHandler) AddToShoppingCart(c *gin.Context) {
	h.addMark(c, h.shoppingCart)
}

// RemoveFromShoppingCart 移出购物车
func (h *RecipeHandler) RemoveFromShoppingCart(c *gin.Context) {
	h.removeMark(c, h.shoppingCart)
}

func (h *RecipeHandler) addMark(c *gin.Context, toggle *service.ToggleService) {
	userID, _ := middleware.GetUserID(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	short, err := toggle.Add(userID, id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Created(c, short)
}

func (h *RecipeHandler) removeMark(c *gin.Context, toggle *service.ToggleService) {
	userID, _ := middleware.GetUserID(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := toggle.Remove(userID, id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.NoContent(c)
}

// DownloadShoppingCart 下载购物清单
// @Summary 下载购物清单
// @Tags 菜谱
// @Security BearerAuth
// @Produce plain
// @Router /api/recipes/download_shopping_cart [get]
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	list, err := h.shoppingService.Build(userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Attachment(c, ShoppingListFilename, "text/plain; charset=utf-8", []byte(list.Render()))
}
