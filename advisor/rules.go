package advisor

import (
	"fmt"
	"math"

	"fintrack/models"

	"github.com/shopspring/decimal"
)

// Input 规则评估的输入
type Input struct {
	*Aggregates
	Budgets []models.Budget
	symbol  string
}

// money 金额取整后带货币符号
func (in *Input) money(v float64) string {
	return fmt.Sprintf("%s%d", in.symbol, roundInt(v))
}

// Rule 单条规则，可产出零条或多条建议
type Rule interface {
	Evaluate(in *Input) []Recommendation
}

// RuleFunc 函数适配为 Rule
type RuleFunc func(in *Input) []Recommendation

// Evaluate 实现 Rule
func (f RuleFunc) Evaluate(in *Input) []Recommendation {
	return f(in)
}

// 内置规则，可按需挑选或重排后传给 NewGenerator，例如只做预算检查
var (
	OverspendRule          Rule = RuleFunc(overspend)
	SavingsPraiseRule      Rule = RuleFunc(savingsPraise)
	CategoryBenchmarkRule  Rule = RuleFunc(categoryBenchmark)
	BudgetComplianceRule   Rule = RuleFunc(budgetCompliance)
	SingleCategoryRule     Rule = RuleFunc(singleCategory)
	NoBudgetsRule          Rule = RuleFunc(noBudgets)
	SavingsOpportunityRule Rule = RuleFunc(savingsOpportunity)
)

// DefaultRules 规则执行顺序是输出契约的一部分
func DefaultRules() []Rule {
	return []Rule{
		OverspendRule,
		SavingsPraiseRule,
		CategoryBenchmarkRule,
		BudgetComplianceRule,
		SingleCategoryRule,
		NoBudgetsRule,
		SavingsOpportunityRule,
	}
}

var (
	savingsPraiseRatio = decimal.NewFromFloat(0.7)
	budgetWarnRatio    = decimal.NewFromFloat(0.8)
)

const benchmarkOverFactor = 1.5

func roundInt(x float64) int64 {
	return int64(math.Round(x))
}

func one(r Recommendation) []Recommendation {
	return []Recommendation{r}
}

func overspend(in *Input) []Recommendation {
	if !in.TotalIncome.IsPositive() || !in.TotalExpenses.GreaterThan(in.TotalIncome) {
		return nil
	}
	income := in.Income()
	overBy := (in.Expenses() - income) / income * 100
	return one(Recommendation{
		Type:     TypeWarning,
		Title:    "Spending Exceeds Income",
		Message:  fmt.Sprintf("You're spending %d%% more than you earn this period. Consider cutting back on non-essential categories.", roundInt(overBy)),
		Priority: PriorityHigh,
	})
}

func savingsPraise(in *Input) []Recommendation {
	if !in.TotalIncome.IsPositive() || !in.TotalExpenses.LessThan(in.TotalIncome.Mul(savingsPraiseRatio)) {
		return nil
	}
	saved := (1 - in.Expenses()/in.Income()) * 100
	return one(Recommendation{
		Type:     TypeSuccess,
		Title:    "Excellent Savings Rate",
		Message:  fmt.Sprintf("You're saving %d%% of your income. Keep up the great work!", roundInt(saved)),
		Priority: PriorityLow,
	})
}

func categoryBenchmark(in *Input) []Recommendation {
	var recs []Recommendation
	income := in.Income()
	for _, cat := range in.CategoryOrder {
		amount := in.CategorySpending[cat].InexactFloat64()
		benchmark := Benchmark(cat)
		ratio := 0.0
		if income > 0 {
			ratio = amount / income
		}
		if ratio <= benchmark*benchmarkOverFactor {
			continue
		}
		recs = append(recs, Recommendation{
			Type:  TypeWarning,
			Title: fmt.Sprintf("High %s Spending", cat),
			Message: fmt.Sprintf("%s costs are %d%% of income (recommended: %d%%). Try to reduce by %s.",
				cat, roundInt(ratio*100), roundInt(benchmark*100), in.money(amount-income*benchmark)),
			Priority: PriorityMedium,
		})
	}
	return recs
}

func budgetCompliance(in *Input) []Recommendation {
	var recs []Recommendation
	for _, b := range in.Budgets {
		// 金额非正的预算视为无效，跳过以免除零
		if !b.Amount.IsPositive() {
			continue
		}
		spent := in.Spent(Category(b.Category))
		limit := b.Amount.InexactFloat64()
		switch {
		case spent.GreaterThan(b.Amount):
			over := spent.Sub(b.Amount).InexactFloat64()
			recs = append(recs, Recommendation{
				Type:  TypeDanger,
				Title: fmt.Sprintf("%s Over Budget", b.Category),
				Message: fmt.Sprintf("You've exceeded your %s budget by %d%% (%s over).",
					b.Category, roundInt(over/limit*100), in.money(over)),
				Priority: PriorityHigh,
			})
		case spent.GreaterThan(b.Amount.Mul(budgetWarnRatio)):
			recs = append(recs, Recommendation{
				Type:  TypeInfo,
				Title: fmt.Sprintf("%s Budget Alert", b.Category),
				Message: fmt.Sprintf("You've used %d%% of your %s budget. Be careful with remaining spending.",
					roundInt(spent.InexactFloat64()/limit*100), b.Category),
				Priority: PriorityMedium,
			})
		}
	}
	return recs
}

func singleCategory(in *Input) []Recommendation {
	if len(in.CategoryOrder) != 1 {
		return nil
	}
	return one(Recommendation{
		Type:     TypeInfo,
		Title:    "Track More Categories",
		Message:  "You're only tracking one spending category. Add more categories for better financial insights.",
		Priority: PriorityLow,
	})
}

func noBudgets(in *Input) []Recommendation {
	if len(in.Budgets) != 0 || in.ExpenseCount == 0 {
		return nil
	}
	return one(Recommendation{
		Type:     TypeInfo,
		Title:    "Set Up Budgets",
		Message:  "Setting category budgets helps control spending. Go to the Budget Planner to set your first budget.",
		Priority: PriorityMedium,
	})
}

func savingsOpportunity(in *Input) []Recommendation {
	if !in.TotalIncome.IsPositive() || !in.TotalIncome.GreaterThan(in.TotalExpenses) {
		return nil
	}
	surplus := in.TotalIncome.Sub(in.TotalExpenses).InexactFloat64()
	return one(Recommendation{
		Type:     TypeSuccess,
		Title:    "Savings Opportunity",
		Message:  fmt.Sprintf("You have %s available to save or invest this period. Consider the 50/30/20 rule for allocation.", in.money(surplus)),
		Priority: PriorityLow,
	})
}
