package api

import (
	"fintrack/advisor"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 支出类别
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryItem 类别及其建议占收入比例
type CategoryItem struct {
	Name      string  `json:"name" example:"Food"`
	Benchmark float64 `json:"benchmark" example:"0.3"`
}

// List 获取支出类别
// @Summary 获取支出类别
// @Description 固定类别集合，按展示顺序返回，附带建议占收入比例
// @Tags 类别
// @Produce json
// @Success 200 {object} Response{data=[]CategoryItem} "获取成功"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	cats := advisor.Categories()
	items := make([]CategoryItem, 0, len(cats))
	for _, cat := range cats {
		items = append(items, CategoryItem{Name: string(cat), Benchmark: advisor.Benchmark(cat)})
	}
	Success(c, items)
}
