package api

import (
	"strings"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// IncomeHandler 收入处理器
type IncomeHandler struct{}

func NewIncomeHandler() *IncomeHandler {
	return &IncomeHandler{}
}

type CreateIncomeRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"50000.00"`
	Source      string  `json:"source" binding:"required,max=100" example:"Salary"`
	Description string  `json:"description" binding:"max=255" example:"January salary"`
	Date        string  `json:"date" binding:"required" example:"2024-01-01"`
	Recurring   bool    `json:"recurring" example:"true"`
}

type IncomeListRequest struct {
	Limit int `form:"limit" example:"50"`
}

// List 获取收入列表
// @Summary 获取收入列表
// @Description 按日期倒序返回当前用户的收入
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param limit query int false "返回条数" default(50)
// @Success 200 {object} Response{data=ListResponse{list=[]models.Income}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/income [get]
func (h *IncomeHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req IncomeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	limit := normalizeLimit(req.Limit)

	var list []models.Income
	if err := database.DB.Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		failInternal(c, err, "查询失败")
		return
	}

	Success(c, ListResponse{Total: len(list), Limit: limit, List: list})
}

// Create 新增收入
// @Summary 新增收入
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIncomeRequest true "收入信息"
// @Success 201 {object} Response{data=models.Income} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/income [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		BadRequest(c, "收入来源不能为空")
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

	income := models.Income{
		UserID:      userID,
		Amount:      amount,
		Source:      source,
		Description: req.Description,
		Date:        date,
		Recurring:   req.Recurring,
	}
	if err := database.DB.Create(&income).Error; err != nil {
		failInternal(c, err, "创建收入失败")
		return
	}

	Created(c, "创建成功", income)
}

// Delete 删除收入
// @Summary 删除收入
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/income/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Income{})
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
