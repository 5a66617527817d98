package service

import (
	"bytes"
	"fmt"

	"fintrack/advisor"

	"github.com/xuri/excelize/v2"
)

// 报表工作表名称
const (
	SheetSummary         = "Summary"
	SheetCategories      = "Categories"
	SheetRecommendations = "Recommendations"
	SheetBudgets         = "Budgets"
)

// ReportContentType xlsx 下载类型
const ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

type reportWriter struct {
	f           *excelize.File
	headerStyle int
	dataStyle   int
}

// BuildMonthlyReport 生成月度分析工作簿；没有预算时不生成 Budgets 表
func BuildMonthlyReport(summary advisor.Summary, comparison []advisor.BudgetStatus) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("初始化工作表失败: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return nil, fmt.Errorf("创建样式失败: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{Border: thinBorder})
	if err != nil {
		return nil, fmt.Errorf("创建样式失败: %w", err)
	}

	w := &reportWriter{f: f, headerStyle: headerStyle, dataStyle: dataStyle}

	summaryRows := [][]interface{}{
		{"Month", summary.Month},
		{"Total income", summary.TotalIncome},
		{"Total expenses", summary.TotalExpenses},
		{"Savings", summary.Savings},
		{"Savings rate (%)", summary.SavingsRate},
		{"Expense count", summary.ExpenseCount},
		{"Health score", summary.HealthScore},
		{"Budget adherence", summary.BudgetAdherence},
		{"Spending diversity", summary.Diversity},
		{"Top category", summary.TopCategory},
	}
	if err := w.table(SheetSummary, []string{"Metric", "Value"}, summaryRows, []float64{22, 18}); err != nil {
		return nil, err
	}

	catRows := make([][]interface{}, 0, len(summary.CategoryBreakdown))
	for _, ct := range summary.CategoryBreakdown {
		catRows = append(catRows, []interface{}{string(ct.Category), ct.Total, ct.Count, ct.Percentage})
	}
	if err := w.sheet(SheetCategories, []string{"Category", "Total", "Count", "Percentage"}, catRows, []float64{16, 14, 10, 12}); err != nil {
		return nil, err
	}

	recRows := make([][]interface{}, 0, len(summary.Recommendations))
	for _, r := range summary.Recommendations {
		recRows = append(recRows, []interface{}{string(r.Priority), string(r.Type), r.Title, r.Message})
	}
	if err := w.sheet(SheetRecommendations, []string{"Priority", "Type", "Title", "Message"}, recRows, []float64{10, 10, 28, 90}); err != nil {
		return nil, err
	}

	if len(comparison) > 0 {
		budgetRows := make([][]interface{}, 0, len(comparison))
		for _, b := range comparison {
			budgetRows = append(budgetRows, []interface{}{b.Category, b.Budget, b.Spent, b.Remaining, b.Percentage, string(b.Status)})
		}
		if err := w.sheet(SheetBudgets, []string{"Category", "Budget", "Spent", "Remaining", "Percentage", "Status"}, budgetRows, []float64{16, 12, 12, 12, 12, 10}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("生成 Excel 失败: %w", err)
	}
	return buf, nil
}

// sheet 新建工作表并写入表格
func (w *reportWriter) sheet(name string, headers []string, rows [][]interface{}, widths []float64) error {
	if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("创建工作表 %s 失败: %w", name, err)
	}
	return w.table(name, headers, rows, widths)
}

// table 写表头、数据行并设置列宽
func (w *reportWriter) table(sheet string, headers []string, rows [][]interface{}, widths []float64) error {
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := w.f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := w.f.SetCellStyle(sheet, cell, cell, w.headerStyle); err != nil {
			return err
		}
	}

	for r, row := range rows {
		first, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := w.f.SetSheetRow(sheet, first, &row); err != nil {
			return fmt.Errorf("写入 %s 第 %d 行失败: %w", sheet, r+2, err)
		}
		last, _ := excelize.CoordinatesToCellName(len(row), r+2)
		if err := w.f.SetCellStyle(sheet, first, last, w.dataStyle); err != nil {
			return err
		}
	}
	return nil
}
