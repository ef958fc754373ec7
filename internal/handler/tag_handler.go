package handler

import (
	"foodgram/internal/dto"
	"foodgram/internal/service"
	"foodgram/internal/utils"

	"github.com/gin-gonic/gin"
)

// TagHandler 标签处理器
type TagHandler struct {
	tagService *service.TagService
}

// NewTagHandler 创建标签处理器
func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// List 标签列表，不分页
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List(c.Query("name"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, tags)
}

// Get 标签详情
func (h *TagHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	tag, err := h.tagService.Get(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, tag)
}

// Create 创建标签（管理员）
func (h *TagHandler) Create(c *gin.Context) {
	var req dto.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	tag, err := h.tagService.Create(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Created(c, tag)
}

// Update 更新标签（管理员）
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindError(c, err)
		return
	}

	tag, err := h.tagService.Update(id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, tag)
}

// Delete 删除标签（管理员）
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.tagService.Delete(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.NoContent(c)
}
