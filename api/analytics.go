package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fintrack/advisor"
	"fintrack/config"
	"fintrack/database"
	"fintrack/metrics"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxTrendMonths = 24

// AnalyticsHandler 月度分析处理器
type AnalyticsHandler struct {
	cfg          *config.Config
	generator    *advisor.Generator
	emailService *service.EmailService
}

// NewAnalyticsHandler 创建分析处理器
func NewAnalyticsHandler(cfg *config.Config, emailService *service.EmailService) *AnalyticsHandler {
	return &AnalyticsHandler{
		cfg:          cfg,
		generator:    advisor.NewGenerator(cfg.Advisor.CurrencySymbol),
		emailService: emailService,
	}
}

// CategoryBreakdownResponse 类别分布
type CategoryBreakdownResponse struct {
	Month     string                  `json:"month"`
	Breakdown []advisor.CategoryTotal `json:"breakdown"`
	Total     float64                 `json:"total"`
}

// TrendPoint 月度趋势中的一个月
type TrendPoint struct {
	Month    string  `json:"month" example:"2024-01"`
	Label    string  `json:"label" example:"Jan 2024"`
	Expenses float64 `json:"expenses"`
	Income   float64 `json:"income"`
	Savings  float64 `json:"savings"`
}

// TrendResponse 月度趋势
type TrendResponse struct {
	Trend []TrendPoint `json:"trend"`
}

// DataPoints 参与分析的记录数
type DataPoints struct {
	Expenses int `json:"expenses"`
	Income   int `json:"income"`
	Budgets  int `json:"budgets"`
}

// RecommendationsResponse 理财建议
type RecommendationsResponse struct {
	Recommendations []advisor.Recommendation `json:"recommendations"`
	GeneratedAt     time.Time                `json:"generatedAt"`
	DataPoints      DataPoints               `json:"dataPoints"`
}

// BudgetVsActualResponse 预算执行对比
type BudgetVsActualResponse struct {
	Month      string                 `json:"month"`
	Comparison []advisor.BudgetStatus `json:"comparison"`
}

// loadMonth 解析 ?month= 并读取该月数据，失败时已写响应
func (h *AnalyticsHandler) loadMonth(c *gin.Context) (database.MonthRecords, bool) {
	monthStr := c.DefaultQuery("month", models.CurrentMonth())
	month, err := models.ParseMonth(monthStr)
	if err != nil {
		BadRequest(c, err.Error())
		return database.MonthRecords{}, false
	}

	rec, err := database.LoadMonth(database.DB, middleware.GetCurrentUserID(c), month)
	if err != nil {
		failInternal(c, err, "读取月度数据失败")
		return rec, false
	}
	return rec, true
}

func (h *AnalyticsHandler) analyze(rec database.MonthRecords) advisor.Summary {
	return h.generator.Analyze(rec.Month.Month, rec.Expenses, rec.Income, rec.Budgets)
}

// Summary 月度汇总
// @Summary 月度汇总
// @Description 收支、储蓄率、健康分、类别分布、预算遵守度与分散度
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param month query string false "月份 (YYYY-MM)，默认当月"
// @Success 200 {object} Response{data=advisor.Summary} "获取成功"
// @Failure 400 {object} Response "月份格式错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	rec, ok := h.loadMonth(c)
	if !ok {
		return
	}

	summary := h.analyze(rec)
	metrics.ObserveAnalysis(summary)
	Success(c, summary)
}

// CategoryBreakdown 类别分布
// @Summary 类别分布
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param month query string false "月份 (YYYY-MM)，默认当月"
// @Success 200 {object} Response{data=CategoryBreakdownResponse} "获取成功"
// @Failure 400 {object} Response "月份格式错误"
// @Router /api/v1/analytics/category-breakdown [get]
func (h *AnalyticsHandler) CategoryBreakdown(c *gin.Context) {
	rec, ok := h.loadMonth(c)
	if !ok {
		return
	}

	agg := advisor.Aggregate(rec.Expenses, nil)
	Success(c, CategoryBreakdownResponse{
		Month:     rec.Month.Month,
		Breakdown: advisor.Breakdown(&agg),
		Total:     agg.Expenses(),
	})
}

// MonthlyTrend 近 N 个月收支趋势
// @Summary 月度趋势
// @Description 以当月结尾的最近 N 个月（默认 6，最多 24），按时间升序
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param months query int false "月数" default(6)
// @Success 200 {object} Response{data=TrendResponse} "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/analytics/monthly-trend [get]
func (h *AnalyticsHandler) MonthlyTrend(c *gin.Context) {
	n := h.cfg.Advisor.TrendMonths
	if v := c.Query("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			BadRequest(c, "months 必须为正整数")
			return
		}
		n = parsed
	}
	if n > maxTrendMonths {
		n = maxTrendMonths
	}

	points, err := trend(middleware.GetCurrentUserID(c), n, time.Now())
	if err != nil {
		failInternal(c, err, "读取趋势数据失败")
		return
	}
	Success(c, TrendResponse{Trend: points})
}

// trend 一次读取整个区间，再按月份归集
func trend(userID uint, n int, ref time.Time) ([]TrendPoint, error) {
	months := models.LastMonths(n, ref)
	points := make([]TrendPoint, 0, len(months))
	if len(months) == 0 {
		return points, nil
	}

	expenses, income, err := database.LoadRange(database.DB, userID, months[0].Start, months[len(months)-1].End)
	if err != nil {
		return nil, err
	}

	spent := make(map[string]decimal.Decimal, len(months))
	earned := make(map[string]decimal.Decimal, len(months))
	for _, e := range expenses {
		key := e.Date.Format(models.MonthLayout)
		spent[key] = spent[key].Add(e.Amount)
	}
	for _, i := range income {
		key := i.Date.Format(models.MonthLayout)
		earned[key] = earned[key].Add(i.Amount)
	}

	for _, m := range months {
		exp, inc := spent[m.Month], earned[m.Month]
		points = append(points, TrendPoint{
			Month:    m.Month,
			Label:    m.Label,
			Expenses: exp.InexactFloat64(),
			Income:   inc.InexactFloat64(),
			Savings:  inc.Sub(exp).InexactFloat64(),
		})
	}
	return points, nil
}

// Recommendations 理财建议
// @Summary 理财建议
// @Description 基于当月收支与预算的规则建议，按优先级 high > medium > low 排序
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param month query string false "月份 (YYYY-MM)，默认当月"
// @Success 200 {object} Response{data=RecommendationsResponse} "获取成功"
// @Failure 400 {object} Response "月份格式错误"
// @Router /api/v1/analytics/ai-recommendations [get]
func (h *AnalyticsHandler) Recommendations(c *gin.Context) {
	rec, ok := h.loadMonth(c)
	if !ok {
		return
	}

	recs := h.generator.Generate(rec.Expenses, rec.Income, rec.Budgets)
	metrics.ObserveRecommendations(recs)
	Success(c, RecommendationsResponse{
		Recommendations: recs,
		GeneratedAt:     time.Now().UTC(),
		DataPoints: DataPoints{
			Expenses: len(rec.Expenses),
			Income:   len(rec.Income),
			Budgets:  len(rec.Budgets),
		},
	})
}

// BudgetVsActual 预算执行对比
// @Summary 预算执行对比
// @Description 每条预算的已用、剩余、百分比与状态 good/warning/over
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param month query string false "月份 (YYYY-MM)，默认当月"
// @Success 200 {object} Response{data=BudgetVsActualResponse} "获取成功"
// @Failure 400 {object} Response "月份格式错误"
// @Router /api/v1/analytics/budget-vs-actual [get]
func (h *AnalyticsHandler) BudgetVsActual(c *gin.Context) {
	rec, ok := h.loadMonth(c)
	if !ok {
		return
	}

	agg := advisor.Aggregate(rec.Expenses, nil)
	Success(c, BudgetVsActualResponse{
		Month:      rec.Month.Month,
		Comparison: advisor.BudgetComparison(&agg, rec.Budgets),
	})
}

// Report 下载月度分析报表
// @Summary 下载月度报表
// @Description 汇总、类别、建议、预算四个工作表的 xlsx 文件
// @Tags 分析
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param month query string false "月份 (YYYY-MM)，默认当月"
// @Success 200 {file} file "xlsx 文件"
// @Failure 400 {object} Response "月份格式错误"
// @Router /api/v1/analytics/report [get]
func (h *AnalyticsHandler) Report(c *gin.Context) {
	rec, ok := h.loadMonth(c)
	if !ok {
		return
	}

	summary := h.analyze(rec)
	agg := advisor.Aggregate(rec.Expenses, nil)
	buf, err := service.BuildMonthlyReport(summary, advisor.BudgetComparison(&agg, rec.Budgets))
	if err != nil {
		failInternal(c, err, "生成报表失败")
		return
	}

	filename := fmt.Sprintf("fintrack_%s.xlsx", rec.Month.Month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, service.ReportContentType, buf.Bytes())
}

// Digest 发送月度摘要邮件
// @Summary 发送月度摘要邮件
// @Description 将当月分析结果发送到当前用户邮箱，需启用邮件服务
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param month query string false "月份 (YYYY-MM)，默认当月"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "邮件服务未启用或月份格式错误"
// @Router /api/v1/analytics/digest [post]
func (h *AnalyticsHandler) Digest(c *gin.Context) {
	if h.emailService == nil || !h.emailService.Enabled() {
		BadRequest(c, service.ErrEmailDisabled.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, middleware.GetCurrentUserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "用户不存在")
			return
		}
		failInternal(c, err, "查询用户失败")
		return
	}

	rec, ok := h.loadMonth(c)
	if !ok {
		return
	}

	summary := h.analyze(rec)
	if err := h.emailService.SendMonthlyDigest(user.Email, user.Name, summary, h.symbol()); err != nil {
		if errors.Is(err, service.ErrEmailDisabled) {
			BadRequest(c, err.Error())
			return
		}
		failInternal(c, err, "邮件发送失败")
		return
	}

	SuccessWithMessage(c, "月度摘要已发送", gin.H{"email": user.Email, "month": summary.Month})
}

func (h *AnalyticsHandler) symbol() string {
	if h.cfg.Advisor.CurrencySymbol == "" {
		return advisor.DefaultCurrencySymbol
	}
	return h.cfg.Advisor.CurrencySymbol
}
