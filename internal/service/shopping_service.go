package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"foodgram/internal/repository"
)

// ShoppingListHeader 购物清单标题行
const ShoppingListHeader = "购物清单:"

// ShoppingList 汇总后的购物清单，按食材名升序
type ShoppingList struct {
	Items []repository.IngredientTotal
}

// Render 输出编号的纯文本清单，每行 "序号: 名称, 数量 单位"
func (l *ShoppingList) Render() string {
	var b strings.Builder
	b.WriteString(ShoppingListHeader)
	b.WriteString("\n")
	for i, item := range l.Items {
		fmt.Fprintf(&b, "%d: %s, %s %s\n",
			i+1, item.Name, formatAmount(item.Total), item.MeasurementUnit)
	}
	return b.String()
}

// formatAmount 保留最多三位小数并去掉多余的0
func formatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// ShoppingService 购物清单服务
type ShoppingService struct {
	recipeRepo *repository.RecipeRepository
}

// NewShoppingService 创建购物清单服务
func NewShoppingService(recipeRepo *repository.RecipeRepository) *ShoppingService {
	return &ShoppingService{recipeRepo: recipeRepo}
}

// Build 汇总用户购物车中所有菜谱的食材，购物车为空时返回空清单
func (s *ShoppingService) Build(userID uint) (*ShoppingList, error) {
	totals, err := s.recipeRepo.AggregateShoppingCart(userID)
	if err != nil {
		return nil, fmt.Errorf("汇总购物清单失败: %w", err)
	}
	return &ShoppingList{Items: totals}, nil
}
