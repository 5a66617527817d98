package advisor

import (
	"testing"

	"fintrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_EmptyInput(t *testing.T) {
	recs := Generate(nil, nil, nil)
	require.NotNil(t, recs)
	assert.Empty(t, recs)

	// 仅有预算、没有支出时不提示设置预算
	assert.Empty(t, Generate(nil, nil, []models.Budget{budget("Food", 100)}))
}

func TestGenerate_OverspendSingleCategory(t *testing.T) {
	recs := Generate(
		[]models.Expense{expense("Food", 5000)},
		[]models.Income{income(4000)},
		nil,
	)

	require.Len(t, recs, 4)
	assert.Equal(t, []string{
		"Spending Exceeds Income",
		"High Food Spending",
		"Set Up Budgets",
		"Track More Categories",
	}, titles(recs))

	assert.Equal(t, TypeWarning, recs[0].Type)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Contains(t, recs[0].Message, "spending 25% more than you earn")

	assert.Equal(t, PriorityMedium, recs[1].Priority)
	assert.Equal(t, "Food costs are 125% of income (recommended: 30%). Try to reduce by ₹3800.", recs[1].Message)

	assert.Equal(t, TypeInfo, recs[2].Type)
	assert.Equal(t, PriorityMedium, recs[2].Priority)
	assert.Equal(t, PriorityLow, recs[3].Priority)
}

func TestGenerate_BudgetOver(t *testing.T) {
	recs := Generate(
		[]models.Expense{expense("Food", 700), expense("Food", 500)},
		nil,
		[]models.Budget{budget("Food", 1000)},
	)

	require.Len(t, recs, 2)
	assert.Equal(t, TypeDanger, recs[0].Type)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Equal(t, "Food Over Budget", recs[0].Title)
	assert.Equal(t, "You've exceeded your Food budget by 20% (₹200 over).", recs[0].Message)
	assert.Equal(t, "Track More Categories", recs[1].Title)
}

func TestGenerate_BudgetAlert(t *testing.T) {
	recs := Generate(
		[]models.Expense{expense("Bills", 850), expense("Food", 100)},
		nil,
		[]models.Budget{budget("Bills", 1000), budget("Food", 1000)},
	)

	require.Len(t, recs, 1)
	assert.Equal(t, TypeInfo, recs[0].Type)
	assert.Equal(t, PriorityMedium, recs[0].Priority)
	assert.Equal(t, "Bills Budget Alert", recs[0].Title)
	assert.Equal(t, "You've used 85% of your Bills budget. Be careful with remaining spending.", recs[0].Message)
}

func TestGenerate_ZeroBudgetSkipped(t *testing.T) {
	recs := Generate(
		[]models.Expense{expense("Bills", 10), expense("Food", 10)},
		nil,
		[]models.Budget{budget("Bills", 0)},
	)
	assert.Empty(t, recs)
}

func TestGenerate_HealthySavings(t *testing.T) {
	recs := Generate(
		[]models.Expense{expense("Food", 2000), expense("Transport", 1000)},
		[]models.Income{income(6000), income(4000)},
		[]models.Budget{budget("Food", 5000)},
	)

	require.Len(t, recs, 2)
	assert.Equal(t, "Excellent Savings Rate", recs[0].Title)
	assert.Equal(t, "You're saving 70% of your income. Keep up the great work!", recs[0].Message)
	assert.Equal(t, "Savings Opportunity", recs[1].Title)
	assert.Contains(t, recs[1].Message, "₹7000 available")
	for _, r := range recs {
		assert.Equal(t, TypeSuccess, r.Type)
		assert.Equal(t, PriorityLow, r.Priority)
	}
}

func TestGenerate_UnknownCategoryUsesDefaultBenchmark(t *testing.T) {
	recs := Generate(
		[]models.Expense{expense("Pets", 100), expense("Food", 100)},
		[]models.Income{income(1000)},
		[]models.Budget{budget("Food", 500)},
	)

	require.NotEmpty(t, recs)
	assert.Equal(t, "High Pets Spending", recs[0].Title)
	assert.Equal(t, "Pets costs are 10% of income (recommended: 5%). Try to reduce by ₹50.", recs[0].Message)
}

func TestGenerate_PriorityOrder(t *testing.T) {
	expenses := []models.Expense{expense("Food", 1200), expense("Travel", 100)}
	budgets := []models.Budget{budget("Food", 1000)}
	incomes := []models.Income{income(2000)}

	recs := Generate(expenses, incomes, budgets)
	require.NotEmpty(t, recs)
	for i := 1; i < len(recs); i++ {
		assert.LessOrEqual(t, recs[i-1].Priority.Rank(), recs[i].Priority.Rank())
	}
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Equal(t, PriorityLow, recs[len(recs)-1].Priority)

	// 同一输入重复调用结果一致
	assert.Equal(t, recs, Generate(expenses, incomes, budgets))

	// 同优先级内按分类首次出现的顺序排列
	reversed := Generate([]models.Expense{expenses[1], expenses[0]}, incomes, budgets)
	assert.ElementsMatch(t, titles(recs), titles(reversed))
	assert.Equal(t, []string{"High Food Spending", "High Travel Spending"}, titles(recs[1:3]))
	assert.Equal(t, []string{"High Travel Spending", "High Food Spending"}, titles(reversed[1:3]))
}

func TestNewGenerator_CustomSymbolAndRules(t *testing.T) {
	expenses := []models.Expense{expense("Food", 100), expense("Bills", 100)}
	incomes := []models.Income{income(1000)}

	g := NewGenerator("$")
	recs := g.Generate(expenses, incomes, []models.Budget{budget("Food", 500)})
	require.NotEmpty(t, recs)
	assert.Contains(t, recs[len(recs)-1].Message, "$800 available")

	only := NewGenerator("", RuleFunc(func(in *Input) []Recommendation {
		return []Recommendation{{Type: TypeInfo, Title: "custom", Priority: PriorityLow}}
	}))
	assert.Equal(t, []string{"custom"}, titles(only.Generate(nil, nil, nil)))
}

func TestNewGenerator_SubsetOfBuiltinRules(t *testing.T) {
	expenses := []models.Expense{expense("Food", 5000)}
	incomes := []models.Income{income(4000)}
	budgets := []models.Budget{budget("Food", 4000)}

	g := NewGenerator("₹", BudgetComplianceRule, OverspendRule)
	recs := g.Generate(expenses, incomes, budgets)

	assert.Equal(t, []string{"Food Over Budget", "Spending Exceeds Income"}, titles(recs))
	assert.Equal(t, "You've exceeded your Food budget by 25% (₹1000 over).", recs[0].Message)

	// 完整规则集还会给出类别超标与单一类别提示
	assert.Len(t, Generate(expenses, incomes, budgets), 4)
}

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 0, PriorityHigh.Rank())
	assert.Equal(t, 1, PriorityMedium.Rank())
	assert.Equal(t, 2, PriorityLow.Rank())
}
