package advisor

import (
	"math"
	"sort"

	"fintrack/models"

	"github.com/shopspring/decimal"
)

// Aggregates 单个用户单月记录的汇总结果
type Aggregates struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	CategorySpending map[Category]decimal.Decimal
	CategoryCounts   map[Category]int
	// CategoryOrder 类别首次出现的顺序，规则按此顺序逐类评估
	CategoryOrder []Category
	ExpenseCount  int
	IncomeCount   int
}

// Aggregate 汇总收入、支出以及按类别的支出
func Aggregate(expenses []models.Expense, income []models.Income) Aggregates {
	agg := Aggregates{
		TotalIncome:      decimal.Zero,
		TotalExpenses:    decimal.Zero,
		CategorySpending: make(map[Category]decimal.Decimal),
		CategoryCounts:   make(map[Category]int),
		ExpenseCount:     len(expenses),
		IncomeCount:      len(income),
	}
	for _, in := range income {
		agg.TotalIncome = agg.TotalIncome.Add(in.Amount)
	}
	for _, e := range expenses {
		cat := Category(e.Category)
		spent, seen := agg.CategorySpending[cat]
		if !seen {
			agg.CategoryOrder = append(agg.CategoryOrder, cat)
			spent = decimal.Zero
		}
		agg.CategorySpending[cat] = spent.Add(e.Amount)
		agg.CategoryCounts[cat]++
		agg.TotalExpenses = agg.TotalExpenses.Add(e.Amount)
	}
	return agg
}

// Income 总收入（浮点）
func (a *Aggregates) Income() float64 {
	return a.TotalIncome.InexactFloat64()
}

// Expenses 总支出（浮点）
func (a *Aggregates) Expenses() float64 {
	return a.TotalExpenses.InexactFloat64()
}

// Spent 某类别的支出，未出现的类别为 0
func (a *Aggregates) Spent(c Category) decimal.Decimal {
	if v, ok := a.CategorySpending[c]; ok {
		return v
	}
	return decimal.Zero
}

// BudgetAdherence 预算遵守度：每条预算未超支记 1，超支记 预算/实际，取平均；无预算时为 1
func BudgetAdherence(spending map[Category]decimal.Decimal, budgets []models.Budget) float64 {
	if len(budgets) == 0 {
		return 1
	}
	var sum float64
	for _, b := range budgets {
		spent, ok := spending[Category(b.Category)]
		if !ok || spent.LessThanOrEqual(b.Amount) {
			sum++
			continue
		}
		sum += b.Amount.Div(spent).InexactFloat64()
	}
	return sum / float64(len(budgets))
}

// CategoryTotal 类别支出汇总
type CategoryTotal struct {
	Category   Category `json:"category"`
	Total      float64  `json:"total"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
}

// Breakdown 按类别汇总，金额降序；金额相同保持首次出现顺序
func Breakdown(a *Aggregates) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(a.CategoryOrder))
	total := a.Expenses()
	for _, cat := range a.CategoryOrder {
		amount := a.CategorySpending[cat].InexactFloat64()
		pct := 0.0
		if total > 0 {
			pct = round1(amount / total * 100)
		}
		out = append(out, CategoryTotal{
			Category:   cat,
			Total:      amount,
			Count:      a.CategoryCounts[cat],
			Percentage: pct,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

// round1 保留一位小数
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
