package advisor

import "math"

const (
	// NeutralHealthScore 无收入时无法评估，返回中性分
	NeutralHealthScore = 50

	maxBudgetPoints    = 30
	maxDiversityPoints = 15
	incomePoints       = 15
)

// Score 计算 0-100 的财务健康分
//
// 组成：储蓄率（0-40）、预算遵守度（0-30）、支出分散度（0-15）、有收入（15）。
func Score(totalIncome, totalExpenses, budgetAdherence, diversityScore float64) int {
	if totalIncome == 0 {
		return NeutralHealthScore
	}

	savingsRate := (totalIncome - totalExpenses) / totalIncome
	score := savingsPoints(savingsRate)
	score += math.Min(maxBudgetPoints, budgetAdherence*maxBudgetPoints)
	score += math.Min(maxDiversityPoints, diversityScore*maxDiversityPoints)
	score += incomePoints

	return int(math.Round(math.Min(100, math.Max(0, score))))
}

func savingsPoints(rate float64) float64 {
	switch {
	case rate >= 0.30:
		return 40
	case rate >= 0.20:
		return 35
	case rate >= 0.10:
		return 25
	case rate >= 0:
		return 15
	default:
		// 超支越多分数越低，最低为 0
		return math.Max(0, 15+rate*50)
	}
}
