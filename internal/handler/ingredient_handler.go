package handler

import (
	"foodgram/internal/dto"
	"foodgram/internal/service"
	"foodgram/internal/utils"

	"github.com/gin-gonic/gin"
)

// IngredientHandler 食材处理器
type IngredientHandler struct {
	ingredientService *service.IngredientService
}

// NewIngredientHandler 创建食材处理器
func NewIngredientHandler(ingredientService *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// List 食材列表，name 按前缀搜索，不分页
// @Summary 食材列表
// @Tags 食材
// @Param name query string false "名称前缀"
// @Router /api/ingredients [get]
func (h *IngredientHandler) List(c *gin.Context) {
	ingredients, err := h.ingredientService.List(c.Query("name"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, ingredients)
}

// Get 食材详情
func (h *IngredientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ingredient, err := h.ingredientService.Get(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, ingredient)
}

// Create 创建食材（管理员）
func (h *IngredientHandler) Create(c *gin.Context) {
	var req dto.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	ingredient, err := h.ingredientService.Create(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Created(c, ingredient)
}

// Update 更新食材（管理员）
func (h *IngredientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	ingredient, err := h.ingredientService.Update(id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, ingredient)
}

// Delete 删除食材（管理员）
func (h *IngredientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.ingredientService.Delete(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.NoContent(c)
}
