package service

import (
	"testing"

	"fintrack/advisor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildMonthlyReport(t *testing.T) {
	comparison := []advisor.BudgetStatus{
		{Category: "Food", Budget: 15000, Spent: 20000, Remaining: -5000, Percentage: 133.3, Status: advisor.BudgetOver},
	}

	buf, err := BuildMonthlyReport(sampleSummary(), comparison)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetCategories, SheetRecommendations, SheetBudgets}, f.GetSheetList())

	month, err := f.GetCellValue(SheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01", month)
	score, _ := f.GetCellValue(SheetSummary, "B8")
	assert.Equal(t, "82", score)

	rows, err := f.GetRows(SheetCategories)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Category", "Total", "Count", "Percentage"}, rows[0])
	assert.Equal(t, "Food", rows[1][0])
	assert.Equal(t, "Bills", rows[2][0])

	recs, _ := f.GetRows(SheetRecommendations)
	require.Len(t, recs, 2)
	assert.Equal(t, "High Food Spending", recs[1][2])

	budgets, _ := f.GetRows(SheetBudgets)
	require.Len(t, budgets, 2)
	assert.Equal(t, "over", budgets[1][5])
}

func TestBuildMonthlyReport_NoBudgets(t *testing.T) {
	buf, err := BuildMonthlyReport(advisor.Summary{Month: "2024-02", TopCategory: "None"}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.NotContains(t, f.GetSheetList(), SheetBudgets)
	rows, _ := f.GetRows(SheetCategories)
	assert.Len(t, rows, 1)
}
