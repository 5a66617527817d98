package api

import (
	"errors"

	"fintrack/advisor"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BudgetHandler 月度预算处理器
type BudgetHandler struct{}

func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{}
}

// SetBudgetRequest 设置预算请求
type SetBudgetRequest struct {
	Category string  `json:"category" binding:"required" example:"Food"`
	Amount   float64 `json:"amount" binding:"required,gt=0" example:"8000"`
	Month    string  `json:"month" binding:"required" example:"2024-01"`
}

// List 获取预算列表
// @Summary 获取预算列表
// @Description 按类别排序返回预算，可按月份筛选
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param month query string false "月份 (YYYY-MM)"
// @Success 200 {object} Response{data=[]models.Budget} "获取成功"
// @Failure 400 {object} Response "月份格式错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if month := c.Query("month"); month != "" {
		if _, err := models.ParseMonth(month); err != nil {
			BadRequest(c, err.Error())
			return
		}
		query = query.Where("month = ?", month)
	}

	budgets := make([]models.Budget, 0)
	if err := query.Order("category ASC").Find(&budgets).Error; err != nil {
		failInternal(c, err, "查询失败")
		return
	}

	Success(c, budgets)
}

// Set 设置预算
// @Summary 设置预算
// @Description 同一用户、类别、月份只保留一条：已存在则更新金额(200)，否则新建(201)
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SetBudgetRequest true "预算信息"
// @Success 200 {object} Response{data=models.Budget} "更新成功"
// @Success 201 {object} Response{data=models.Budget} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Set(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	category, ok := advisor.ParseCategory(req.Category)
	if !ok {
		BadRequest(c, "无效的预算类别")
		return
	}
	month, err := models.ParseMonth(req.Month)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}

	var budget models.Budget
	err = database.DB.Where("user_id = ? AND category = ? AND month = ?", userID, string(category), month.Month).
		First(&budget).Error
	switch {
	case err == nil:
		if err := database.DB.Model(&budget).Update("amount", amount).Error; err != nil {
			failInternal(c, err, "更新预算失败")
			return
		}
		budget.Amount = amount
		SuccessWithMessage(c, "预算已更新", budget)
	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = models.Budget{
			UserID:   userID,
			Category: string(category),
			Amount:   amount,
			Month:    month.Month,
		}
		if err := database.DB.Create(&budget).Error; err != nil {
			failInternal(c, err, "创建预算失败")
			return
		}
		Created(c, "预算已创建", budget)
	default:
		failInternal(c, err, "设置预算失败")
	}
}

// Delete 删除预算
// @Summary 删除预算
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Budget{})
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
