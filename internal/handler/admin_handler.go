package handler

import (
	"io"

	"foodgram/internal/service"
	"foodgram/internal/utils"

	"github.com/gin-gonic/gin"
)

// maxImportSize 食材导入文件大小上限
const maxImportSize = 10 << 20

// AdminHandler 管理员处理器
type AdminHandler struct {
	ingredientService *service.IngredientService
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(ingredientService *service.IngredientService) *AdminHandler {
	return &AdminHandler{ingredientService: ingredientService}
}

// ImportIngredients 上传JSON或CSV文件批量导入食材
// @Summary 导入食材
// @Tags 管理员
// @Accept multipart/form-data
// @Param file formData file true "ingredients.json / ingredients.csv"
// @Router /api/admin/ingredients/import [post]
func (h *AdminHandler) ImportIngredients(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "文件上传失败: "+err.Error())
		return
	}
	if file.Size > maxImportSize {
		utils.BadRequest(c, "文件过大")
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.BadRequest(c, "打开文件失败: "+err.Error())
		return
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, maxImportSize))
	if err != nil {
		utils.BadRequest(c, "读取文件失败: "+err.Error())
		return
	}

	created, err := h.ingredientService.Import(file.Filename, content)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "导入完成", gin.H{
		"filename": file.Filename,
		"created":  created,
	})
}
