package api

import (
	"strconv"

	"fintrack/advisor"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// ExpenseHandler 支出记录处理器
type ExpenseHandler struct{}

// NewExpenseHandler 创建支出记录处理器
func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{}
}

// CreateExpenseRequest 创建支出请求
type CreateExpenseRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"450.00"`
	Category    string  `json:"category" binding:"required" example:"Food"`
	Description string  `json:"description" binding:"max=255" example:"Groceries"`
	Date        string  `json:"date" binding:"required" example:"2024-01-15"`
}

// UpdateExpenseRequest 更新支出请求，未传字段保持不变
type UpdateExpenseRequest struct {
	Amount      *float64 `json:"amount" binding:"omitempty,gt=0" example:"450.00"`
	Category    string   `json:"category" example:"Food"`
	Description *string  `json:"description" binding:"omitempty,max=255" example:"Groceries"`
	Date        string   `json:"date" example:"2024-01-15"`
}

// ExpenseListRequest 支出列表查询
type ExpenseListRequest struct {
	StartDate string `form:"startDate" example:"2024-01-01"`
	EndDate   string `form:"endDate" example:"2024-01-31"`
	Category  string `form:"category" example:"Food"`
	Limit     int    `form:"limit" example:"50"`
}

// parseRecordID 解析路径中的记录 ID
func parseRecordID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// parseAmount 金额保留两位小数，舍入后必须仍为正数
func parseAmount(c *gin.Context, v float64) (decimal.Decimal, bool) {
	amount := decimal.NewFromFloat(v).Round(2)
	if !amount.IsPositive() {
		BadRequest(c, "金额必须大于 0（保留两位小数）")
		return amount, false
	}
	return amount, true
}

// normalizeLimit 默认 50，上限 500
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// List 获取支出列表
// @Summary 获取支出列表
// @Description 按日期倒序返回当前用户的支出，支持日期范围与类别筛选
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "开始日期 (YYYY-MM-DD)"
// @Param endDate query string false "结束日期 (YYYY-MM-DD)"
// @Param category query string false "类别"
// @Param limit query int false "返回条数" default(50)
// @Success 200 {object} Response{data=ListResponse{list=[]models.Expense}} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ExpenseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	limit := normalizeLimit(req.Limit)

	query := database.DB.Where("user_id = ?", userID)
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.StartDate != "" {
		start, err := models.ParseDate(req.StartDate)
		if err != nil {
			BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
			return
		}
		query = query.Where("date >= ?", start.Format(models.DateLayout))
	}
	if req.EndDate != "" {
		end, err := models.ParseDate(req.EndDate)
		if err != nil {
			BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
			return
		}
		query = query.Where("date <= ?", end.Format(models.DateLayout))
	}

	var expenses []models.Expense
	if err := query.Order("date DESC, id DESC").Limit(limit).Find(&expenses).Error; err != nil {
		failInternal(c, err, "查询失败")
		return
	}

	Success(c, ListResponse{Total: len(expenses), Limit: limit, List: expenses})
}

// Create 新增支出
// @Summary 新增支出
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "支出信息"
// @Success 201 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	category, ok := advisor.ParseCategory(req.Category)
	if !ok {
		BadRequest(c, "无效的支出类别")
		return
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}
	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}

	expense := models.Expense{
		UserID:      userID,
		Amount:      amount,
		Category:    string(category),
		Description: req.Description,
		Date:        date,
	}
	if err := database.DB.Create(&expense).Error; err != nil {
		failInternal(c, err, "创建支出失败")
		return
	}

	Created(c, "创建成功", expense)
}

// Update 更新支出
// @Summary 更新支出
// @Description 部分更新，未传字段保持原值
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Param request body UpdateExpenseRequest true "支出信息"
// @Success 200 {object} Response{data=models.Expense} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := make(map[string]interface{})
	if req.Amount != nil {
		amount, ok := parseAmount(c, *req.Amount)
		if !ok {
			return
		}
		updates["amount"] = amount
	}
	if req.Category != "" {
		category, ok := advisor.ParseCategory(req.Category)
		if !ok {
			BadRequest(c, "无效的支出类别")
			return
		}
		updates["category"] = string(category)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Date != "" {
		date, err := models.ParseDate(req.Date)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		updates["date"] = date
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&expense).Updates(updates).Error; err != nil {
			failInternal(c, err, "更新失败")
			return
		}
	}

	SuccessWithMessage(c, "更新成功", expense)
}

// Delete 删除支出
// @Summary 删除支出
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if result.Error != nil {
		failInternal(c, result.Error, "删除失败")
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "记录不存在")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
