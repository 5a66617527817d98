package advisor

import (
	"sort"

	"fintrack/models"
)

// Type 建议类型
type Type string

const (
	TypeSuccess Type = "success"
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeDanger  Type = "danger"
)

// Priority 建议优先级
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank 排序权重，越小越靠前
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Recommendation 一条理财建议，每次请求重新生成，不落库
type Recommendation struct {
	Type     Type     `json:"type"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Priority Priority `json:"priority"`
}

// DefaultCurrencySymbol 金额展示使用的货币符号
const DefaultCurrencySymbol = "₹"

// Generator 按固定顺序执行规则并输出排序后的建议；创建后只读，可并发使用
type Generator struct {
	symbol string
	rules  []Rule
}

// NewGenerator 创建建议生成器，未指定规则时使用 DefaultRules
func NewGenerator(currencySymbol string, rules ...Rule) *Generator {
	if currencySymbol == "" {
		currencySymbol = DefaultCurrencySymbol
	}
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Generator{symbol: currencySymbol, rules: rules}
}

var defaultGenerator = NewGenerator(DefaultCurrencySymbol)

// Generate 使用默认生成器生成建议
func Generate(expenses []models.Expense, income []models.Income, budgets []models.Budget) []Recommendation {
	return defaultGenerator.Generate(expenses, income, budgets)
}

// Generate 汇总记录后生成建议
func (g *Generator) Generate(expenses []models.Expense, income []models.Income, budgets []models.Budget) []Recommendation {
	agg := Aggregate(expenses, income)
	return g.Evaluate(&agg, budgets)
}

// Evaluate 基于已有汇总结果执行规则
func (g *Generator) Evaluate(agg *Aggregates, budgets []models.Budget) []Recommendation {
	in := &Input{Aggregates: agg, Budgets: budgets, symbol: g.symbol}
	recs := make([]Recommendation, 0)
	for _, rule := range g.rules {
		recs = append(recs, rule.Evaluate(in)...)
	}
	// 稳定排序：同优先级保持规则执行顺序
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	return recs
}
