package advisor

import (
	"fintrack/models"
)

// Summary 单月分析结果
type Summary struct {
	Month             string           `json:"currentMonth"`
	TotalIncome       float64          `json:"totalIncome"`
	TotalExpenses     float64          `json:"totalExpenses"`
	Savings           float64          `json:"savings"`
	SavingsRate       float64          `json:"savingsRate"` // 百分比，保留一位小数
	ExpenseCount      int              `json:"expenseCount"`
	HealthScore       int              `json:"healthScore"`
	BudgetAdherence   float64          `json:"budgetAdherence"`
	Diversity         float64          `json:"diversity"`
	CategoryBreakdown []CategoryTotal  `json:"categoryBreakdown"`
	TopCategory       string           `json:"topCategory"`
	Recommendations   []Recommendation `json:"recommendations"`
}

// Analyze 使用默认生成器完成单月分析
func Analyze(month string, expenses []models.Expense, income []models.Income, budgets []models.Budget) Summary {
	return defaultGenerator.Analyze(month, expenses, income, budgets)
}

// Analyze 汇总 -> 分散度 -> 健康分 -> 建议
func (g *Generator) Analyze(month string, expenses []models.Expense, income []models.Income, budgets []models.Budget) Summary {
	agg := Aggregate(expenses, income)
	adherence := BudgetAdherence(agg.CategorySpending, budgets)
	diversity := Diversity(agg.CategorySpending)

	totalIncome := agg.Income()
	totalExpenses := agg.Expenses()
	savings := agg.TotalIncome.Sub(agg.TotalExpenses).InexactFloat64()
	savingsRate := 0.0
	if totalIncome > 0 {
		savingsRate = round1(savings / totalIncome * 100)
	}

	breakdown := Breakdown(&agg)
	top := "None"
	if len(breakdown) > 0 {
		top = string(breakdown[0].Category)
	}

	return Summary{
		Month:             month,
		TotalIncome:       totalIncome,
		TotalExpenses:     totalExpenses,
		Savings:           savings,
		SavingsRate:       savingsRate,
		ExpenseCount:      agg.ExpenseCount,
		HealthScore:       Score(totalIncome, totalExpenses, adherence, diversity),
		BudgetAdherence:   adherence,
		Diversity:         diversity,
		CategoryBreakdown: breakdown,
		TopCategory:       top,
		Recommendations:   g.Evaluate(&agg, budgets),
	}
}

// BudgetState 预算执行状态
type BudgetState string

const (
	BudgetGood    BudgetState = "good"
	BudgetWarning BudgetState = "warning"
	BudgetOver    BudgetState = "over"
)

// BudgetStatus 预算与实际支出对比
type BudgetStatus struct {
	ID         uint        `json:"id"`
	Category   string      `json:"category"`
	Budget     float64     `json:"budget"`
	Spent      float64     `json:"spent"`
	Remaining  float64     `json:"remaining"`
	Percentage float64     `json:"percentage"`
	Status     BudgetState `json:"status"`
}

// BudgetComparison 逐条预算对比实际支出，顺序与输入一致
func BudgetComparison(agg *Aggregates, budgets []models.Budget) []BudgetStatus {
	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := agg.Spent(Category(b.Category))
		status := BudgetGood
		switch {
		case spent.GreaterThan(b.Amount):
			status = BudgetOver
		case spent.GreaterThan(b.Amount.Mul(budgetWarnRatio)):
			status = BudgetWarning
		}
		pct := 0.0
		if b.Amount.IsPositive() {
			pct = round1(spent.Div(b.Amount).InexactFloat64() * 100)
		}
		out = append(out, BudgetStatus{
			ID:         b.ID,
			Category:   b.Category,
			Budget:     b.Amount.InexactFloat64(),
			Spent:      spent.InexactFloat64(),
			Remaining:  b.Amount.Sub(spent).InexactFloat64(),
			Percentage: pct,
			Status:     status,
		})
	}
	return out
}
