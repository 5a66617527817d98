package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// exportRange 解析必填的 startDate/endDate
func exportRange(c *gin.Context) (start, end time.Time, ok bool) {
	startStr, endStr := c.Query("startDate"), c.Query("endDate")
	if startStr == "" || endStr == "" {
		BadRequest(c, "请提供开始日期和结束日期")
		return start, end, false
	}

	var err error
	if start, err = models.ParseDate(startStr); err != nil {
		BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
		return start, end, false
	}
	if end, err = models.ParseDate(endStr); err != nil {
		BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
		return start, end, false
	}
	if end.Before(start) {
		BadRequest(c, "结束日期不能早于开始日期")
		return start, end, false
	}
	return start, end, true
}

// ExportCSV 导出支出与收入为 CSV
// @Summary 导出收支记录
// @Description 按日期范围导出支出与收入为 CSV 文件，按日期升序
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param startDate query string true "开始日期 (2024-01-01)"
// @Param endDate query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	start, end, ok := exportRange(c)
	if !ok {
		return
	}

	expenses, income, err := database.LoadRange(database.DB, middleware.GetCurrentUserID(c), start, end)
	if err != nil {
		failInternal(c, err, "查询数据失败")
		return
	}

	buf := new(bytes.Buffer)
	// BOM，Excel 打开不乱码
	buf.WriteString("\xEF\xBB\xBF")
	writer := csv.NewWriter(buf)

	records := [][]string{{"Type", "ID", "Date", "Amount", "Category/Source", "Description", "Recurring"}}
	for _, e := range expenses {
		records = append(records, []string{
			"expense", fmt.Sprint(e.ID), e.Date.Format(models.DateLayout), e.Amount.StringFixed(2),
			e.Category, e.Description, "",
		})
	}
	for _, i := range income {
		records = append(records, []string{
			"income", fmt.Sprint(i.ID), i.Date.Format(models.DateLayout), i.Amount.StringFixed(2),
			i.Source, i.Description, fmt.Sprint(i.Recurring),
		})
	}
	if err := writer.WriteAll(records); err != nil {
		failInternal(c, err, "生成 CSV 失败")
		return
	}

	filename := fmt.Sprintf("fintrack_%s_%s.csv", start.Format(models.DateLayout), end.Format(models.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSONResponse JSON 导出结果
type ExportJSONResponse struct {
	StartDate     string           `json:"startDate"`
	EndDate       string           `json:"endDate"`
	TotalExpenses string           `json:"totalExpenses"`
	TotalIncome   string           `json:"totalIncome"`
	Expenses      []models.Expense `json:"expenses"`
	Income        []models.Income  `json:"income"`
}

// ExportJSON 导出支出与收入为 JSON
// @Summary 导出收支记录为 JSON
// @Tags 导出
// @Produce json
// @Security BearerAuth
// @Param startDate query string true "开始日期 (2024-01-01)"
// @Param endDate query string true "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=ExportJSONResponse} "导出成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	start, end, ok := exportRange(c)
	if !ok {
		return
	}

	expenses, income, err := database.LoadRange(database.DB, middleware.GetCurrentUserID(c), start, end)
	if err != nil {
		failInternal(c, err, "查询数据失败")
		return
	}

	var totalExp, totalInc decimal.Decimal
	for _, e := range expenses {
		totalExp = totalExp.Add(e.Amount)
	}
	for _, i := range income {
		totalInc = totalInc.Add(i.Amount)
	}

	Success(c, ExportJSONResponse{
		StartDate:     start.Format(models.DateLayout),
		EndDate:       end.Format(models.DateLayout),
		TotalExpenses: totalExp.StringFixed(2),
		TotalIncome:   totalInc.StringFixed(2),
		Expenses:      expenses,
		Income:        income,
	})
}
