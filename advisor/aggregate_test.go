package advisor

import (
	"testing"

	"fintrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	agg := Aggregate(
		[]models.Expense{
			expense("Bills", 100.10),
			expense("Food", 20.20),
			expense("Bills", 0.70),
		},
		[]models.Income{income(1000), income(250.5)},
	)

	assert.Equal(t, "1250.5", agg.TotalIncome.String())
	assert.Equal(t, "121", agg.TotalExpenses.String())
	assert.Equal(t, []Category{CategoryBills, CategoryFood}, agg.CategoryOrder)
	assert.Equal(t, "100.8", agg.Spent(CategoryBills).String())
	assert.Equal(t, 2, agg.CategoryCounts[CategoryBills])
	assert.True(t, agg.Spent(CategoryTravel).IsZero())
	assert.Equal(t, 3, agg.ExpenseCount)
	assert.Equal(t, 2, agg.IncomeCount)
}

func TestBudgetAdherence(t *testing.T) {
	agg := Aggregate([]models.Expense{expense("Food", 1200), expense("Bills", 300)}, nil)

	assert.Equal(t, 1.0, BudgetAdherence(agg.CategorySpending, nil))
	assert.Equal(t, 1.0, BudgetAdherence(agg.CategorySpending, []models.Budget{budget("Bills", 300)}))
	assert.Equal(t, 1.0, BudgetAdherence(agg.CategorySpending, []models.Budget{budget("Travel", 100)}))
	assert.InDelta(t, 1000.0/1200.0, BudgetAdherence(agg.CategorySpending, []models.Budget{budget("Food", 1000)}), 1e-9)

	mixed := BudgetAdherence(agg.CategorySpending, []models.Budget{budget("Food", 600), budget("Bills", 500)})
	assert.InDelta(t, 0.75, mixed, 1e-9)
}

func TestBreakdown(t *testing.T) {
	agg := Aggregate([]models.Expense{
		expense("Food", 100),
		expense("Bills", 300),
		expense("Travel", 100),
		expense("Food", 0),
	}, nil)

	b := Breakdown(&agg)
	require.Len(t, b, 3)
	assert.Equal(t, CategoryBills, b[0].Category)
	assert.Equal(t, 300.0, b[0].Total)
	assert.Equal(t, 60.0, b[0].Percentage)
	// 金额相同时保持首次出现顺序
	assert.Equal(t, CategoryFood, b[1].Category)
	assert.Equal(t, 2, b[1].Count)
	assert.Equal(t, CategoryTravel, b[2].Category)
	assert.Equal(t, 20.0, b[2].Percentage)

	empty := Aggregate(nil, nil)
	assert.Empty(t, Breakdown(&empty))
}
