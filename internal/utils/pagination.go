package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page 分页参数，page 从1开始，limit 为每页条数
type Page struct {
	Page  int
	Limit int
}

// Offset 查询偏移量
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePage 读取 page 和 limit 查询参数，非法值回退到默认值，limit 不超过 maxLimit
func ParsePage(c *gin.Context, defaultLimit, maxLimit int) Page {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Page{Page: page, Limit: limit}
}
