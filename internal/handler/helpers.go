package handler

import (
	"strconv"

	"foodgram/internal/middleware"
	"foodgram/internal/service"
	"foodgram/internal/utils"

	"github.com/gin-gonic/gin"
)

// parseID 解析路径中的ID，非法ID按资源不存在处理
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.NotFound(c, "资源不存在")
		return 0, false
	}
	return uint(id), true
}

// actorFrom 当前用户，匿名时为nil
func actorFrom(c *gin.Context) *service.Actor {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil
	}
	return &service.Actor{UserID: userID, IsAdmin: middleware.IsAdmin(c)}
}

// queryInt 读取整数查询参数，缺省或非法时返回 def
func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
